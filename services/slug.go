package services

import (
	"encoding/base32"
	"strings"

	"github.com/google/uuid"
)

const maxSlugAttempts = 5

var slugEncoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// SlugGenerator davetiyenin public adresi için aday üretir.
type SlugGenerator func() string

// NewSlug rastgele bir UUID'yi 26 karakterlik küçük harfli base32 metne çevirir.
// Sonuç URL'de kaçış gerektirmez ve tahmin edilemez.
func NewSlug() string {
	id := uuid.New()
	return strings.ToLower(slugEncoding.EncodeToString(id[:]))
}
