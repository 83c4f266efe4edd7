package options

import (
	"github.com/novalagung/gubrak"
	"github.com/spf13/pflag"

	"github.com/shahid-ra/ecommerce-backend-service/pkg/errors"
)

// 存储驱动
const (
	DriverMongo  = "mongo"
	DriverMySQL  = "mysql"
	DriverMemory = "memory"
)

// StoreOptions 选择存储后端。
type StoreOptions struct {
	Driver string `json:"driver" mapstructure:"driver"`
}

func NewStoreOptions() *StoreOptions {
	return &StoreOptions{Driver: DriverMongo}
}

func (o *StoreOptions) Validate() []error {
	var errs []error

	if found, _ := gubrak.Includes([]string{DriverMongo, DriverMySQL, DriverMemory}, o.Driver); !found {
		errs = append(errs, errors.Errorf("--store.driver must be one of mongo, mysql or memory, got %q", o.Driver))
	}

	return errs
}

func (o *StoreOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.Driver, "store.driver", o.Driver, ""+
		"Storage backend: mongo, mysql or memory. The memory driver keeps data in process and is meant for local development.")
}
