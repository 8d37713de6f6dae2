package handlers

import "strings"

// DispatchMode tells the client how to trigger a download on its platform.
type DispatchMode string

const (
	// DispatchDirect is the desktop path: a plain anchor click on an
	// attachment URL.
	DispatchDirect DispatchMode = "direct"
	// DispatchNewTab is the mobile path: open the URL in a new tab, with
	// manual instructions in case the browser blocks it.
	DispatchNewTab DispatchMode = "new-tab"
	// DispatchCopyLink is the mobile ZIP path: mobile browsers handle big
	// archives poorly, so the UI offers copying the link instead.
	DispatchCopyLink DispatchMode = "copy-link"
)

const (
	newTabInstructions   = "If the download does not start, long-press the button and choose 'Open in new tab'."
	copyLinkInstructions = "Copy the link and download it with a file manager app, then extract the ZIP onto your keyboard's USB drive from a computer."
)

// ClassifyDispatch maps a User-Agent and filename to the download mode the
// client should use, plus manual-recovery instructions where the mode needs
// them. Shared by every download surface so the platform quirks live in one
// place.
func ClassifyDispatch(userAgent, filename string) (DispatchMode, string) {
	if !isMobileUA(userAgent) {
		return DispatchDirect, ""
	}
	if strings.HasSuffix(strings.ToLower(filename), ".zip") {
		return DispatchCopyLink, copyLinkInstructions
	}
	return DispatchNewTab, newTabInstructions
}

func isMobileUA(userAgent string) bool {
	ua := strings.ToLower(userAgent)
	for _, marker := range []string{"android", "iphone", "ipad", "ipod", "mobile"} {
		if strings.Contains(ua, marker) {
			return true
		}
	}
	return false
}
