// ecommerce-apiserver 商品库存与用户认证的 REST 服务。
package main

import (
	"os"
	"runtime"

	"github.com/shahid-ra/ecommerce-backend-service/internal/apiserver"
)

func main() {
	if len(os.Getenv("GOMAXPROCS")) == 0 {
		runtime.GOMAXPROCS(runtime.NumCPU())
	}

	apiserver.NewApp("ecommerce-apiserver").Run()
}
