// SPDX-License-Identifier: MPL-2.0

//go:build windows

package spawn

import "syscall"

// sessionAttr detaches the child into its own process group so console
// events aimed at the executor do not fan out to it.
func sessionAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{CreationFlags: syscall.CREATE_NEW_PROCESS_GROUP}
}
