package views

import (
	"embed"
	"io/fs"
	"net/http"
	"time"

	"github.com/gofiber/template/html/v2"
)

//go:embed templates
var templates embed.FS

var turkishMonths = [...]string{
	"Ocak", "Şubat", "Mart", "Nisan", "Mayıs", "Haziran",
	"Temmuz", "Ağustos", "Eylül", "Ekim", "Kasım", "Aralık",
}

// NewEngine binary'ye gömülü şablonlardan bir html engine oluşturur.
func NewEngine() *html.Engine {
	sub, err := fs.Sub(templates, "templates")
	if err != nil {
		panic(err)
	}
	engine := html.NewFileSystem(http.FS(sub), ".html")
	engine.AddFunc("longDate", longDate)
	engine.AddFunc("clock", func(t *time.Time) string {
		if t == nil {
			return ""
		}
		return t.Format("15:04")
	})
	return engine
}

// longDate tarihi "12 Haziran 2026" biçiminde yazar.
func longDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2") + " " + turkishMonths[t.Month()-1] + " " + t.Format("2006")
}
