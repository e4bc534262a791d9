package useragent

import (
	"strings"
	"unicode/utf8"

	"dugun.link/models"

	ua "github.com/mileusna/useragent"
)

const maxBrowserLen = 50

// Parse User-Agent başlığından cihaz türünü ve tarayıcı adını en iyi tahminle çıkarır.
// Tanınmayan değerler için DeviceTypeUnknown ve boş tarayıcı döner; hata üretmez.
func Parse(raw string) (deviceType, browser string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return models.DeviceTypeUnknown, ""
	}

	parsed := ua.Parse(raw)
	switch {
	case parsed.Bot:
		deviceType = models.DeviceTypeBot
	case parsed.Tablet:
		deviceType = models.DeviceTypeTablet
	case parsed.Mobile:
		deviceType = models.DeviceTypeMobile
	case parsed.Desktop:
		deviceType = models.DeviceTypeDesktop
	default:
		deviceType = models.DeviceTypeUnknown
	}

	return deviceType, Truncate(parsed.Name, maxBrowserLen)
}

// Truncate s'yi en fazla max bayta kısaltır. Kesim çok baytlı bir karakterin ortasına
// denk gelirse karakterin başına geri çekilir; geçersiz UTF-8 baytları atılır.
func Truncate(s string, max int) string {
	s = strings.ToValidUTF8(s, "")
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
