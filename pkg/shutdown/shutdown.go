/*
Package shutdown 提供进程优雅退出的回调机制。

ShutdownManager 负责感知退出事件（例如 POSIX 信号），触发后 GracefulShutdown
并发执行所有回调，全部返回后调用管理器的 ShutdownFinish。

	gs := shutdown.New()
	gs.AddShutdownManager(posixsignal.NewPosixSignalManager())
	gs.AddShutdownCallback(shutdown.ShutdownFunc(func(string) error {
		return server.Close()
	}))
	if err := gs.Start(); err != nil {
		return err
	}
*/
package shutdown

import (
	"sync"
)

// ShutdownCallback 退出时执行的回调，参数为触发退出的管理器名称。
type ShutdownCallback interface {
	OnShutdown(string) error
}

// ShutdownFunc 使普通函数满足 ShutdownCallback。
type ShutdownFunc func(string) error

// OnShutdown defines the action needed to run when shutdown triggered.
func (f ShutdownFunc) OnShutdown(shutdownManager string) error {
	return f(shutdownManager)
}

// ShutdownManager 监听退出事件的来源。
type ShutdownManager interface {
	GetName() string
	Start(gs GSInterface) error
	ShutdownStart() error
	ShutdownFinish() error
}

// ErrorHandler 处理回调或管理器返回的错误。
type ErrorHandler interface {
	OnError(err error)
}

// ErrorFunc 使普通函数满足 ErrorHandler。
type ErrorFunc func(err error)

// OnError defines the action needed to run when error occurred.
func (f ErrorFunc) OnError(err error) {
	f(err)
}

// GSInterface 管理器通过它触发退出。
type GSInterface interface {
	StartShutdown(sm ShutdownManager)
	ReportError(err error)
	AddShutdownCallback(shutdownCallback ShutdownCallback)
}

// GracefulShutdown 保存管理器与回调。
type GracefulShutdown struct {
	mu           sync.Mutex
	callbacks    []ShutdownCallback
	managers     []ShutdownManager
	errorHandler ErrorHandler
}

// New initializes GracefulShutdown.
func New() *GracefulShutdown {
	return &GracefulShutdown{
		callbacks: make([]ShutdownCallback, 0, 10),
		managers:  make([]ShutdownManager, 0, 3),
	}
}

// Start 启动全部管理器。
func (gs *GracefulShutdown) Start() error {
	for _, manager := range gs.managers {
		if err := manager.Start(gs); err != nil {
			return err
		}
	}

	return nil
}

// AddShutdownManager adds a ShutdownManager that will listen to shutdown requests.
func (gs *GracefulShutdown) AddShutdownManager(manager ShutdownManager) {
	gs.managers = append(gs.managers, manager)
}

// AddShutdownCallback adds a ShutdownCallback that will be called when
// shutdown is requested.
func (gs *GracefulShutdown) AddShutdownCallback(shutdownCallback ShutdownCallback) {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	gs.callbacks = append(gs.callbacks, shutdownCallback)
}

// SetErrorHandler sets an ErrorHandler that will be called when an error
// is encountered in ShutdownCallback or in ShutdownManager.
func (gs *GracefulShutdown) SetErrorHandler(errorHandler ErrorHandler) {
	gs.errorHandler = errorHandler
}

// StartShutdown 并发执行回调并等待全部完成。
func (gs *GracefulShutdown) StartShutdown(sm ShutdownManager) {
	gs.ReportError(sm.ShutdownStart())

	gs.mu.Lock()
	callbacks := append([]ShutdownCallback(nil), gs.callbacks...)
	gs.mu.Unlock()

	var wg sync.WaitGroup
	for _, shutdownCallback := range callbacks {
		wg.Add(1)
		go func(shutdownCallback ShutdownCallback) {
			defer wg.Done()
			gs.ReportError(shutdownCallback.OnShutdown(sm.GetName()))
		}(shutdownCallback)
	}
	wg.Wait()

	gs.ReportError(sm.ShutdownFinish())
}

// ReportError 将非空错误交给 ErrorHandler。
func (gs *GracefulShutdown) ReportError(err error) {
	if err != nil && gs.errorHandler != nil {
		gs.errorHandler.OnError(err)
	}
}
