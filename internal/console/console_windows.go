//go:build windows

package console

import (
	"fmt"
	"os"
	"syscall"
	"unsafe"
)

var (
	kernel32         = syscall.NewLazyDLL("kernel32.dll")
	user32           = syscall.NewLazyDLL("user32.dll")
	attachConsole    = kernel32.NewProc("AttachConsole")
	allocConsole     = kernel32.NewProc("AllocConsole")
	getStdHandle     = kernel32.NewProc("GetStdHandle")
	getConsoleWindow = kernel32.NewProc("GetConsoleWindow")
	setConsoleTitleW = kernel32.NewProc("SetConsoleTitleW")
	showWindowProc   = user32.NewProc("ShowWindow")
	setFocusProc     = user32.NewProc("SetFocus")
)

const (
	ATTACH_PARENT_PROCESS = ^uint32(0) // -1 as uint32
	STD_INPUT_HANDLE      = ^uint32(0) - 10 + 1
	STD_OUTPUT_HANDLE     = ^uint32(0) - 11 + 1
	STD_ERROR_HANDLE      = ^uint32(0) - 12 + 1
	SW_SHOWNORMAL         = 1
)

// Attach tries to attach to or create a console window.
// Returns true if a console is available for output.
func Attach() bool {
	stdOutputHandle, _, _ := getStdHandle.Call(uintptr(STD_OUTPUT_HANDLE))
	if stdOutputHandle != 0 && stdOutputHandle != uintptr(syscall.InvalidHandle) {
		return true
	}

	// Double-clicked from Explorer: attach to a parent console or open a new one
	attachSuccess, _, _ := attachConsole.Call(uintptr(ATTACH_PARENT_PROCESS))

	wasAllocated := false
	if attachSuccess == 0 {
		allocSuccess, _, _ := allocConsole.Call()
		if allocSuccess == 0 {
			return false
		}
		wasAllocated = true
	}

	stdOutputHandle, _, _ = getStdHandle.Call(uintptr(STD_OUTPUT_HANDLE))
	stdErrorHandle, _, _ := getStdHandle.Call(uintptr(STD_ERROR_HANDLE))
	stdInputHandle, _, _ := getStdHandle.Call(uintptr(STD_INPUT_HANDLE))

	if stdOutputHandle != 0 && stdOutputHandle != uintptr(syscall.InvalidHandle) {
		os.Stdout = os.NewFile(stdOutputHandle, "/dev/stdout")
	}
	if stdErrorHandle != 0 && stdErrorHandle != uintptr(syscall.InvalidHandle) {
		os.Stderr = os.NewFile(stdErrorHandle, "/dev/stderr")
	}
	if stdInputHandle != 0 && stdInputHandle != uintptr(syscall.InvalidHandle) {
		os.Stdin = os.NewFile(stdInputHandle, "/dev/stdin")
	}

	if wasAllocated {
		if hwnd := Window(); hwnd != 0 {
			showWindowProc.Call(hwnd, SW_SHOWNORMAL)
			setFocusProc.Call(hwnd)
		}
	}

	return true
}

// SetTitle sets the console window title
func SetTitle(title string) error {
	titlePtr, err := syscall.UTF16PtrFromString(title)
	if err != nil {
		return err
	}

	r1, _, callErr := setConsoleTitleW.Call(uintptr(unsafe.Pointer(titlePtr)))
	if r1 == 0 {
		return fmt.Errorf("SetConsoleTitle failed: %v", callErr)
	}
	return nil
}

// Window returns the console window handle (HWND), or 0 without a console
func Window() uintptr {
	if err := getConsoleWindow.Find(); err != nil {
		return 0
	}
	hwnd, _, _ := getConsoleWindow.Call()
	return hwnd
}
