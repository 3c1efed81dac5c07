//go:build !linux
// +build !linux

package blackhole

import (
	"os"
)

func signals() []os.Signal {
	return []os.Signal{os.Interrupt}
}
