package pdf

import (
	"bytes"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/aja-school/aja-fees-hub/internal/domain/shared"
)

// Protector wraps a rendered document with password-based access protection.
// Content and layout pass through unchanged; only the encryption envelope is
// added.
type Protector struct{}

// NewProtector creates a new Protector.
func NewProtector() *Protector {
	return &Protector{}
}

// Protect returns a copy of doc that requires password to open. The same
// password is set as user and owner password, AES-256.
func (p *Protector) Protect(doc []byte, password string) ([]byte, error) {
	conf := model.NewAESConfiguration(password, password, 256)
	conf.Cmd = model.ENCRYPT

	var buf bytes.Buffer
	if err := api.Encrypt(bytes.NewReader(doc), &buf, conf); err != nil {
		return nil, shared.WrapError("statement", "Protect", shared.ErrIO, "failed to encrypt statement", err)
	}

	return buf.Bytes(), nil
}
