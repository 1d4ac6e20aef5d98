// file: internals/helpers/convert_image.go
package helper

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime/multipart"
	"regexp"
	"time"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

const maxScreenshotBytes = 5 * 1024 * 1024 // 5MB, payload ditahan in-memory

// ReadImageFile membaca isi multipart file apa adanya (dengan batas ukuran).
func ReadImageFile(fileHeader *multipart.FileHeader) ([]byte, string, error) {
	if fileHeader.Size > maxScreenshotBytes {
		return nil, "", fmt.Errorf("ukuran file melebihi %dMB", maxScreenshotBytes/(1024*1024))
	}

	src, err := fileHeader.Open()
	if err != nil {
		return nil, "", fmt.Errorf("gagal membuka file gambar: %w", err)
	}
	defer src.Close()

	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, src); err != nil {
		return nil, "", fmt.Errorf("gagal membaca file gambar: %w", err)
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return buf.Bytes(), contentType, nil
}

// ConvertToWebP menormalkan gambar (jpeg/png) menjadi webp dengan lebar maksimum.
// Kalau decode gagal, kembalikan bytes asli supaya upload tetap jalan.
func ConvertToWebP(raw []byte, maxWidth int) ([]byte, string) {
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return raw, "application/octet-stream"
	}

	if maxWidth > 0 && img.Bounds().Dx() > maxWidth {
		img = imaging.Resize(img, maxWidth, 0, imaging.Lanczos)
	}

	out := new(bytes.Buffer)
	if err := webp.Encode(out, img, &webp.Options{Quality: 80}); err != nil {
		return raw, "application/octet-stream"
	}
	return out.Bytes(), "image/webp"
}

// ✅ Buat nama unik
func sanitizeFilename(filename string) string {
	re := regexp.MustCompile(`[^a-zA-Z0-9.\-_]+`)
	return re.ReplaceAllString(filename, "_")
}

func GenerateUniqueFilename(folder, originalFilename string) string {
	timestamp := time.Now().Format("20060102")
	return fmt.Sprintf("%s/%s-%s-%s", folder, timestamp, uuid.New().String(), sanitizeFilename(originalFilename))
}
