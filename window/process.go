//go:build windows

package window

import (
	"errors"
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

// ErrAccessDenied implies the owning process of a window could not be opened.
var ErrAccessDenied = errors.New("cannot open owning process")

const (
	memCommit     = 0x00001000
	memRelease    = 0x00008000
	pageReadWrite = 0x04
)

// Process is an open handle to the process that owns some window, used to
// move data across the address-space boundary.
type Process struct {
	handle windows.Handle
}

// OpenOwner opens the process owning hwnd with enough rights to allocate,
// write and read its memory.
func OpenOwner(hwnd uintptr) (*Process, error) {
	var pid uint32
	if _, err := windows.GetWindowThreadProcessId(windows.HWND(hwnd), &pid); err != nil {
		return nil, fmt.Errorf("GetWindowThreadProcessId failed: %w", err)
	}

	const access = windows.PROCESS_VM_OPERATION | windows.PROCESS_VM_READ |
		windows.PROCESS_VM_WRITE | windows.PROCESS_QUERY_INFORMATION
	h, err := windows.OpenProcess(access, false, pid)
	if err != nil {
		return nil, fmt.Errorf("%w (pid %d): %v", ErrAccessDenied, pid, err)
	}
	return &Process{handle: h}, nil
}

// Alloc commits size bytes of read/write memory inside the process.
func (p *Process) Alloc(size uintptr) (uintptr, error) {
	addr, _, err := ProcVirtualAllocEx.Call(uintptr(p.handle), 0, size, memCommit, pageReadWrite)
	if addr == 0 {
		return 0, fmt.Errorf("VirtualAllocEx failed: %w", err)
	}
	return addr, nil
}

// Free releases memory obtained from Alloc.
func (p *Process) Free(addr uintptr) error {
	ret, _, err := ProcVirtualFreeEx.Call(uintptr(p.handle), addr, 0, memRelease)
	if ret == 0 {
		return fmt.Errorf("VirtualFreeEx failed: %w", err)
	}
	return nil
}

// Read copies len(buf) bytes from addr in the process and returns how many
// bytes were actually transferred.
func (p *Process) Read(addr uintptr, buf []byte) (int, error) {
	if len(buf) == 0 {
		return 0, nil
	}
	var n uintptr
	err := windows.ReadProcessMemory(p.handle, addr, &buf[0], uintptr(len(buf)), &n)
	if err != nil {
		return int(n), fmt.Errorf("ReadProcessMemory failed: %w", err)
	}
	return int(n), nil
}

func (p *Process) Close() error {
	return windows.CloseHandle(p.handle)
}

// PointerSize is the width of a pointer field in native structures of
// this process.
const PointerSize = int(unsafe.Sizeof(uintptr(0)))
