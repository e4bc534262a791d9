package services

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"dugun.link/configs/configslog"
	"dugun.link/models"
	"dugun.link/policies"
	"dugun.link/repositories"

	"gorm.io/gorm"
)

const maxImportRows = 5000

var csvHeader = []string{"name", "category", "whatsapp"}

// formulaPrefixes hücre başında formül başlatan karakterlerdir.
const formulaPrefixes = "=+-@\t\r"

// IGuestCSVService misafir listesinin CSV olarak içe/dışa aktarımı.
type IGuestCSVService interface {
	ImportCSV(ctx context.Context, actor *models.User, invitationID uint, r io.Reader) (int, error)
	ExportCSV(ctx context.Context, actor *models.User, invitationID uint, w io.Writer) error
}

// ImportCSV önce tüm satırları doğrular, sonra hepsini tek transaction'da ekler.
// Herhangi bir satır geçersizse hiçbir kayıt eklenmez ve satır numaralı hatalar döner.
// Başlık satırı zorunludur; sütun sırası serbesttir, whatsapp sütunu isteğe bağlıdır.
func (s *GuestService) ImportCSV(ctx context.Context, actor *models.User, invitationID uint, r io.Reader) (int, error) {
	if _, err := s.auth.authorize(ctx, actor, policies.ResourceGuest, policies.ActionCreate, invitationID); err != nil {
		return 0, err
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return 0, newValidationError("file", "dosya boş")
		}
		return 0, newValidationError("file", "CSV okunamadı")
	}
	columns, err := mapCSVColumns(header)
	if err != nil {
		return 0, err
	}

	var guests []models.Guest
	rowErrors := &ValidationError{Fields: map[string]string{}}
	dataRows := 0
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			line := 0
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				line = parseErr.StartLine
			}
			rowErrors.Fields[fmt.Sprintf("row_%d", line)] = "CSV satırı okunamadı"
			continue
		}
		// Çok satırlı tırnaklı alanlarda da kaydın dosyadaki ilk satırı raporlanır.
		line, _ := reader.FieldPos(0)
		if isBlankRecord(record) {
			continue
		}
		dataRows++
		if dataRows > maxImportRows {
			return 0, newValidationError("file", fmt.Sprintf("en fazla %d satır içe aktarılabilir", maxImportRows))
		}

		input := GuestInput{
			Name:           unescapeCSVCell(csvField(record, columns, "name")),
			Category:       csvField(record, columns, "category"),
			WhatsappNumber: csvField(record, columns, "whatsapp"),
		}
		guest, err := input.toGuest(invitationID)
		if err != nil {
			var ve *ValidationError
			if errors.As(err, &ve) {
				for field, msg := range ve.Fields {
					rowErrors.Fields[fmt.Sprintf("row_%d.%s", line, field)] = msg
				}
				continue
			}
			return 0, err
		}
		guests = append(guests, *guest)
	}

	if len(rowErrors.Fields) > 0 {
		return 0, rowErrors
	}
	if len(guests) == 0 {
		return 0, newValidationError("file", "içe aktarılacak satır yok")
	}

	ctx = models.ContextWithUserID(ctx, actor.ID)
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.repo.CreateBatch(repositories.ContextWithTx(ctx, tx), guests)
	})
	if err != nil {
		return 0, err
	}
	configslog.SLog.Infof("%d misafir içe aktarıldı: davetiye %d", len(guests), invitationID)
	return len(guests), nil
}

// ExportCSV misafir listesini içe aktarımla aynı biçimde yazar.
func (s *GuestService) ExportCSV(ctx context.Context, actor *models.User, invitationID uint, w io.Writer) error {
	if _, err := s.auth.authorize(ctx, actor, policies.ResourceGuest, policies.ActionViewAny, invitationID); err != nil {
		return err
	}
	guests, err := s.repo.FindByInvitationID(ctx, invitationID)
	if err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeader); err != nil {
		return err
	}
	for _, g := range guests {
		number := ""
		if g.WhatsappNumber != nil {
			number = *g.WhatsappNumber
		}
		if err := writer.Write([]string{escapeCSVCell(g.Name), string(g.Category), number}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// escapeCSVCell tablolama programlarının formül olarak yorumlayacağı hücrelerin başına
// tek tırnak ekler. Kategori sabit bir kümeden, numara yalnızca rakamlardan oluştuğu için
// sadece serbest metin olan ad alanına uygulanır.
func escapeCSVCell(v string) string {
	if v != "" && strings.ContainsRune(formulaPrefixes, rune(v[0])) {
		return "'" + v
	}
	return v
}

// unescapeCSVCell escapeCSVCell'in eklediği tırnağı kaldırır; dışa aktarılan dosya aynen geri yüklenebilir.
func unescapeCSVCell(v string) string {
	if len(v) > 1 && v[0] == '\'' && strings.ContainsRune(formulaPrefixes, rune(v[1])) {
		return v[1:]
	}
	return v
}

func mapCSVColumns(header []string) (map[string]int, error) {
	columns := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		columns[name] = i
	}
	for _, required := range []string{"name", "category"} {
		if _, ok := columns[required]; !ok {
			return nil, newValidationError("file", "başlık satırında '"+required+"' sütunu eksik")
		}
	}
	return columns, nil
}

func csvField(record []string, columns map[string]int, name string) string {
	idx, ok := columns[name]
	if !ok || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

func isBlankRecord(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
