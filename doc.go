// Package trayloc finds where a notification-area (system tray) icon is
// drawn on screen.
//
// Windows has no single API for this that works on every version, so a
// Resolver tries, in order:
//   - the shell's own icon-rectangle query (Shell_NotifyIconGetRect),
//   - or, where that export is missing, a scan of the toolbar controls inside
//     the shell process,
//   - and finally a color probe that briefly marks the icon and searches a
//     capture of the notification area for the mark.
//
// Example:
//
//	icon, err := notifyicon.NewHost(1, img, "my app")
//	if err != nil {
//	    return err
//	}
//	defer icon.Close()
//
//	r := trayloc.New()
//	rect, err := r.Locate(icon, 0, false)
//	if errors.Is(err, trayloc.ErrIconNotFound) {
//	    // location unknown; not a failure
//	}
package trayloc
