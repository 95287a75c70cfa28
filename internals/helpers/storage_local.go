package helper

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"escolar_backend/internals/configs"
)

// Anexos (PDF e imagens) ficam no disco público e a API devolve URLs absolutas.
// Imagens são normalizadas (máx. 1600px) e reencodadas em WebP.

const (
	maxAnexoSize  = 10 << 20 // 10MB
	maxImageWidth = 1600
)

var filenameRe = regexp.MustCompile(`[^a-zA-Z0-9.\-_]+`)

func sanitizeFilename(name string) string {
	name = filenameRe.ReplaceAllString(name, "-")
	if len(name) > 80 {
		name = name[len(name)-80:]
	}
	return strings.Trim(name, "-")
}

func uploadRoot() string {
	return configs.GetEnv("UPLOAD_DIR", "./public")
}

func publicURL(rel string) string {
	return strings.TrimRight(configs.PublicBaseURL, "/") + "/public/" + rel
}

// SaveAnexo grava o arquivo enviado e retorna a URL pública absoluta.
func SaveAnexo(folder string, fh *multipart.FileHeader) (string, error) {
	if fh.Size > maxAnexoSize {
		return "", fmt.Errorf("anexo excede o limite de %dMB", maxAnexoSize>>20)
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("falha ao abrir anexo: %w", err)
	}
	defer src.Close()

	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, src); err != nil {
		return "", fmt.Errorf("falha ao ler anexo: %w", err)
	}

	contentType := fh.Header.Get("Content-Type")
	name := fmt.Sprintf("%d-%s", time.Now().UnixNano()%1_000_000, uuid.NewString()[:8])

	var data []byte
	switch {
	case strings.HasPrefix(contentType, "image/"):
		out, err := normalizeImage(buf.Bytes())
		if err != nil {
			return "", err
		}
		data = out
		name += ".webp"
	case contentType == "application/pdf":
		data = buf.Bytes()
		name += "-" + sanitizeFilename(fh.Filename)
	default:
		return "", fmt.Errorf("tipo de anexo não suportado: %s", contentType)
	}

	rel := filepath.Join(folder, name)
	dst := filepath.Join(uploadRoot(), rel)
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", fmt.Errorf("falha ao criar diretório de upload: %w", err)
	}
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return "", fmt.Errorf("falha ao gravar anexo: %w", err)
	}
	return publicURL(filepath.ToSlash(rel)), nil
}

func normalizeImage(raw []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("imagem inválida: %w", err)
	}
	if img.Bounds().Dx() > maxImageWidth {
		img = imaging.Resize(img, maxImageWidth, 0, imaging.Lanczos)
	}
	out := new(bytes.Buffer)
	if err := webp.Encode(out, img, &webp.Options{Quality: 80}); err != nil {
		return nil, fmt.Errorf("falha ao converter imagem: %w", err)
	}
	return out.Bytes(), nil
}
