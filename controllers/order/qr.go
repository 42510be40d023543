package ordercontroller

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/skip2/go-qrcode"
)

// QRGenerator writes pickup QR codes under the uploads dir. Staff scan the
// code at handover to pull up the order. A nil *QRGenerator disables codes.
type QRGenerator struct {
	UploadsDir    string
	PublicBaseURL string
}

func NewQRGenerator(uploadsDir, publicBaseURL string) *QRGenerator {
	if uploadsDir == "" {
		return nil
	}
	return &QRGenerator{UploadsDir: uploadsDir, PublicBaseURL: publicBaseURL}
}

// GenerateForOrder encodes a PNG for the order and returns its public URL.
func (g *QRGenerator) GenerateForOrder(orderID uint) (string, error) {
	if g == nil {
		return "", fmt.Errorf("qr generation disabled")
	}

	qrData := fmt.Sprintf("%s/admin/orders/%d", g.PublicBaseURL, orderID)
	png, err := qrcode.Encode(qrData, qrcode.Medium, 256)
	if err != nil {
		return "", err
	}

	dir := filepath.Join(g.UploadsDir, "qr")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	filename := fmt.Sprintf("order_%d.png", orderID)
	if err := os.WriteFile(filepath.Join(dir, filename), png, 0644); err != nil {
		return "", err
	}

	return fmt.Sprintf("/uploads/qr/%s", filename), nil
}
