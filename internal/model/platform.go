package model

import "fmt"

// Platform identifies a social network a series is tracked on.
type Platform string

const (
	PlatformFacebook  Platform = "facebook"
	PlatformInstagram Platform = "instagram"
	PlatformYouTube   Platform = "youtube"
)

// Platforms returns the platforms tracked by default.
func Platforms() []Platform {
	return []Platform{PlatformFacebook, PlatformInstagram, PlatformYouTube}
}

// ParsePlatform validates a platform name.
func ParsePlatform(s string) (Platform, error) {
	switch Platform(s) {
	case PlatformFacebook, PlatformInstagram, PlatformYouTube:
		return Platform(s), nil
	default:
		return "", fmt.Errorf("unknown platform %q", s)
	}
}
