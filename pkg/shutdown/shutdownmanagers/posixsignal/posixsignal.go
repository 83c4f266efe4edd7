// Package posixsignal 监听 POSIX 信号触发优雅退出，默认为 SIGINT 与 SIGTERM。
package posixsignal

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/shahid-ra/ecommerce-backend-service/pkg/shutdown"
)

// Name defines shutdown manager name.
const Name = "PosixSignalManager"

// PosixSignalManager implements ShutdownManager interface.
type PosixSignalManager struct {
	signals []os.Signal
	exit    func(int)
}

// NewPosixSignalManager 未指定信号时监听 SIGINT 与 SIGTERM。
func NewPosixSignalManager(sig ...os.Signal) *PosixSignalManager {
	if len(sig) == 0 {
		sig = []os.Signal{os.Interrupt, syscall.SIGTERM}
	}

	return &PosixSignalManager{
		signals: sig,
		exit:    os.Exit,
	}
}

// GetName returns name of this ShutdownManager.
func (m *PosixSignalManager) GetName() string {
	return Name
}

// Start 在后台等待信号。
func (m *PosixSignalManager) Start(gs shutdown.GSInterface) error {
	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, m.signals...)

		<-c
		gs.StartShutdown(m)
	}()

	return nil
}

// ShutdownStart does nothing.
func (m *PosixSignalManager) ShutdownStart() error {
	return nil
}

// ShutdownFinish 回调全部完成后退出进程。
func (m *PosixSignalManager) ShutdownFinish() error {
	m.exit(0)

	return nil
}
