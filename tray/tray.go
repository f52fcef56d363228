//go:build windows

package tray

import (
	"log"
	"runtime"
	"sync"
	"syscall"
	"unsafe"

	"github.com/lxn/win"
)

const (
	wmApp          = 0x8000
	wmTrayCallback = wmApp + 1

	wmLButtonUp     = 0x0202
	wmLButtonDblClk = 0x0203
	wmRButtonUp     = 0x0205
	wmContextMenu   = 0x007B

	// NotifyIcon v4 selection codes; not exported by lxn/win.
	ninSelect    = win.WM_USER + 0
	ninKeySelect = win.WM_USER + 1

	idShow = 1001
	idExit = 1002

	className  = "ScreenToneTrayClass"
	windowName = "ScreenTone Tray"
)

var (
	user32           = syscall.NewLazyDLL("user32.dll")
	procAppendMenuW  = user32.NewProc("AppendMenuW")
	procTrackPopup   = user32.NewProc("TrackPopupMenu")
	procCreateIconEx = user32.NewProc("CreateIconFromResourceEx")
)

// Only one tray per process: the window class name is fixed and the
// window procedure callback can be allocated just once.
var (
	instance     *Tray
	wndProcOnce  sync.Once
	wndProcAddr  uintptr
	taskbarReset uint32
)

// Tray owns the Shell_NotifyIcon system-tray icon with its Show/Exit
// context menu. It runs a Win32 message loop on a dedicated, locked OS
// thread; OnShow and OnExit are invoked from that thread. The wails
// runtime calls used by the app are safe to issue from any goroutine,
// so the callbacks can drive the window directly.
type Tray struct {
	OnShow func()
	OnExit func()

	tooltip string
	iconPNG []byte

	hwnd  win.HWND
	nid   win.NOTIFYICONDATA
	hIcon win.HICON
}

// New prepares a tray icon with the given tooltip. iconPNG may be nil,
// in which case the stock application icon is shown.
func New(tooltip string, iconPNG []byte) *Tray {
	return &Tray{tooltip: tooltip, iconPNG: iconPNG}
}

// Start launches the tray message loop in its own goroutine.
func (t *Tray) Start() {
	instance = t
	go t.loop()
}

// Stop removes the icon and terminates the message loop.
func (t *Tray) Stop() {
	if t.hwnd != 0 {
		win.PostMessage(t.hwnd, win.WM_CLOSE, 0, 0)
	}
}

func (t *Tray) loop() {
	// The message loop and the window it serves must stay on one thread.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	hInst := win.GetModuleHandle(nil)
	clsName, _ := syscall.UTF16PtrFromString(className)

	wndProcOnce.Do(func() {
		wndProcAddr = syscall.NewCallback(wndProc)
		tbc, _ := syscall.UTF16PtrFromString("TaskbarCreated")
		taskbarReset = win.RegisterWindowMessage(tbc)
	})

	wc := win.WNDCLASSEX{
		CbSize:        uint32(unsafe.Sizeof(win.WNDCLASSEX{})),
		LpfnWndProc:   wndProcAddr,
		HInstance:     hInst,
		LpszClassName: clsName,
	}
	win.RegisterClassEx(&wc)

	winName, _ := syscall.UTF16PtrFromString(windowName)
	t.hwnd = win.CreateWindowEx(0, clsName, winName, 0, 0, 0, 0, 0, 0, 0, hInst, nil)
	if t.hwnd == 0 {
		log.Println("Warning: could not create tray message window")
		return
	}

	t.hIcon = t.createIcon()
	t.addIcon()

	var msg win.MSG
	for win.GetMessage(&msg, 0, 0, 0) > 0 {
		win.TranslateMessage(&msg)
		win.DispatchMessage(&msg)
	}

	if t.hIcon != 0 {
		win.DestroyIcon(t.hIcon)
		t.hIcon = 0
	}
}

// addIcon registers the notify icon with the shell. Also called again
// when Explorer restarts and broadcasts TaskbarCreated.
func (t *Tray) addIcon() {
	t.nid = win.NOTIFYICONDATA{}
	t.nid.CbSize = uint32(unsafe.Sizeof(t.nid))
	t.nid.HWnd = t.hwnd
	t.nid.UID = 1
	t.nid.UFlags = win.NIF_ICON | win.NIF_MESSAGE | win.NIF_TIP
	t.nid.UCallbackMessage = uint32(wmTrayCallback)
	t.nid.HIcon = t.hIcon
	tip, _ := syscall.UTF16FromString(t.tooltip)
	copy(t.nid.SzTip[:], tip)

	win.Shell_NotifyIcon(win.NIM_ADD, &t.nid)
	t.nid.UVersion = win.NOTIFYICON_VERSION_4
	win.Shell_NotifyIcon(win.NIM_SETVERSION, &t.nid)
}

// createIcon builds an HICON from the PNG bytes. CreateIconFromResourceEx
// accepts PNG data directly on Vista and later.
func (t *Tray) createIcon() win.HICON {
	if len(t.iconPNG) > 0 {
		hIcon, _, _ := procCreateIconEx.Call(
			uintptr(unsafe.Pointer(&t.iconPNG[0])),
			uintptr(len(t.iconPNG)),
			1,       // fIcon
			0x30000, // icon/cursor format version
			0, 0,    // use the resource's own size
			0,
		)
		if hIcon != 0 {
			return win.HICON(hIcon)
		}
		log.Println("Warning: could not create tray icon from PNG, using stock icon")
	}
	return win.LoadIcon(0, win.MAKEINTRESOURCE(win.IDI_APPLICATION))
}

func (t *Tray) showMenu() {
	hMenu := win.CreatePopupMenu()
	if hMenu == 0 {
		return
	}
	defer win.DestroyMenu(hMenu)

	showItem, _ := syscall.UTF16PtrFromString("Show")
	procAppendMenuW.Call(uintptr(hMenu), win.MF_STRING, idShow, uintptr(unsafe.Pointer(showItem)))
	exitItem, _ := syscall.UTF16PtrFromString("Exit")
	procAppendMenuW.Call(uintptr(hMenu), win.MF_STRING, idExit, uintptr(unsafe.Pointer(exitItem)))

	var pt win.POINT
	win.GetCursorPos(&pt)
	// The menu will not dismiss on an outside click unless our window is
	// foreground while it is tracked.
	win.SetForegroundWindow(t.hwnd)

	cmd, _, _ := procTrackPopup.Call(
		uintptr(hMenu),
		win.TPM_RETURNCMD|win.TPM_RIGHTBUTTON,
		uintptr(pt.X),
		uintptr(pt.Y),
		0,
		uintptr(t.hwnd),
		0,
	)
	// WM_NULL, so the menu dismisses when the user clicks elsewhere.
	win.PostMessage(t.hwnd, 0, 0, 0)

	switch cmd {
	case idShow:
		if t.OnShow != nil {
			t.OnShow()
		}
	case idExit:
		if t.OnExit != nil {
			t.OnExit()
		}
	}
}

func wndProc(hwnd win.HWND, msg uint32, wParam, lParam uintptr) uintptr {
	t := instance
	if t == nil {
		return win.DefWindowProc(hwnd, msg, wParam, lParam)
	}

	if msg == taskbarReset {
		t.addIcon()
		return 0
	}

	switch msg {
	case wmTrayCallback:
		// With NOTIFYICON_VERSION_4 the event code is in LOWORD(lParam).
		switch uint32(lParam) & 0xFFFF {
		case ninSelect, ninKeySelect, wmLButtonUp, wmLButtonDblClk:
			if t.OnShow != nil {
				t.OnShow()
			}
		case wmRButtonUp, wmContextMenu:
			t.showMenu()
		}
		return 0

	case win.WM_DESTROY:
		win.Shell_NotifyIcon(win.NIM_DELETE, &t.nid)
		win.PostQuitMessage(0)
		return 0
	}
	return win.DefWindowProc(hwnd, msg, wParam, lParam)
}
