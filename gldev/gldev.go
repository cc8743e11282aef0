// Package gldev implements [glrender.Device] on an OpenGL 4.1 core context.
// A Device must be created and used on the thread that owns the current GL context.
// Without cgo every constructor fails.
package gldev

import "github.com/soypat/wiretube/glrender"

var _ glrender.Device = (*Device)(nil)

const floatSize = 4
