package hdhr

import "net/url"

// ExtractRecordingID resolves the opaque recording identifier the device
// never exposes as a first-class field. Fallback order: the id query
// parameter of CmdURL, then of PlayURL, then the raw FileID. Returns ""
// when none yields an identifier.
func ExtractRecordingID(cmdURL, playURL, fileID string) string {
	if id := idQueryParam(cmdURL); id != "" {
		return id
	}
	if id := idQueryParam(playURL); id != "" {
		return id
	}
	return fileID
}

func idQueryParam(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return u.Query().Get("id")
}
