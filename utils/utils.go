package utils

import (
	"errors"
	"fmt"
	rndm "math/rand"
	"mime/multipart"
	"net/http"
	"net/url"
	"path/filepath"
	"regexp"
	"strconv"
)

// --- Random String Generators ---

var letterRunes = []rune("abcdefghijklmnopqrstuvwxyz0123456789_ABCDEFGHIJKLMNOPQRSTUVWXYZ")

// GenerateRandomString creates a random alphanumeric string of length n.
func GenerateRandomString(n int) string {
	b := make([]rune, n)
	for i := range b {
		b[i] = letterRunes[rndm.Intn(len(letterRunes))]
	}
	return string(b)
}

// --- Query Param Helpers ---

// QueryInt parses an integer query parameter, returning def when absent or
// malformed.
func QueryInt(r *http.Request, key string, def int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// LoginRedirect builds the login URL carrying the caller's intended
// destination, so the user lands back where they started after
// re-authentication.
func LoginRedirect(target string) string {
	return "/login?redirect_to=" + url.QueryEscape(target)
}

// --- Image Validation ---

var SupportedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

// ErrUnsupportedImageType rejects uploads outside SupportedImageTypes before
// any decoding happens.
var ErrUnsupportedImageType = errors.New("invalid file type. Supported formats: JPEG, PNG, WebP, GIF")

// ValidateImageFileType checks the declared MIME type of an uploaded file.
func ValidateImageFileType(header *multipart.FileHeader) error {
	if !SupportedImageTypes[header.Header.Get("Content-Type")] {
		return ErrUnsupportedImageType
	}
	return nil
}

// SanitizeFilename strips anything outside [\w.-] from an uploaded name.
func SanitizeFilename(name string) string {
	re := regexp.MustCompile(`[^\w.\-]`)
	clean := re.ReplaceAllString(filepath.Base(name), "_")
	if clean == "" {
		return "file"
	}
	return clean
}

// FormatRupiah renders an integer price as "Rp 15.000" for PDF output.
func FormatRupiah(v int) string {
	s := strconv.Itoa(v)
	n := len(s)
	if n <= 3 {
		return "Rp " + s
	}
	out := ""
	for i, c := range s {
		if i > 0 && (n-i)%3 == 0 {
			out += "."
		}
		out += string(c)
	}
	return fmt.Sprintf("Rp %s", out)
}
