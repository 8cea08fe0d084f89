package filemgr

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"waydown/utils"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

type EntityType string

const (
	EntitySpot EntityType = "spot"
	EntityUser EntityType = "user"
	EntityPost EntityType = "post"
)

const uploadRoot = "static/uploads"

var entitySubfolders = map[EntityType]string{
	EntitySpot: "spotpic",
	EntityUser: "userpic",
	EntityPost: "postpic",
}

func uploadDir(entity EntityType) string {
	sub, ok := entitySubfolders[entity]
	if !ok {
		sub = "misc"
	}
	return filepath.Join(uploadRoot, sub)
}

// SaveImage decodes, re-encodes and stores one uploaded image plus a 300px-wide
// thumbnail. Returns the public URL of the original and the thumbnail.
func SaveImage(header *multipart.FileHeader, entity EntityType) (string, string, error) {
	src, err := header.Open()
	if err != nil {
		return "", "", fmt.Errorf("failed to open image file: %w", err)
	}
	defer src.Close()

	img, err := imaging.Decode(src)
	if err != nil {
		return "", "", fmt.Errorf("failed to decode image: %w", err)
	}

	uniqueID := strings.ReplaceAll(uuid.New().String(), "-", "")
	fileName := uniqueID + ".jpg"

	dir := uploadDir(entity)
	thumbDir := filepath.Join(dir, "thumb")
	if err := utils.EnsureDir(dir); err != nil {
		return "", "", fmt.Errorf("failed to create upload directory: %w", err)
	}
	if err := utils.EnsureDir(thumbDir); err != nil {
		return "", "", fmt.Errorf("failed to create thumbnail directory: %w", err)
	}

	if err := imaging.Save(img, filepath.Join(dir, fileName)); err != nil {
		return "", "", fmt.Errorf("failed to save original image: %w", err)
	}

	thumbImg := imaging.Resize(img, 300, 0, imaging.Lanczos)
	if err := imaging.Save(thumbImg, filepath.Join(thumbDir, fileName)); err != nil {
		return "", "", fmt.Errorf("failed to save thumbnail: %w", err)
	}

	base := "/static/uploads/" + entitySubfolders[entity]
	return base + "/" + fileName, base + "/thumb/" + fileName, nil
}

// SaveFormImages stores every file under formKey, bailing on the first invalid one.
func SaveFormImages(r *http.Request, formKey string, entity EntityType) ([]string, []string, error) {
	if r.MultipartForm == nil {
		return nil, nil, nil
	}
	files := r.MultipartForm.File[formKey]
	if len(files) == 0 {
		return nil, nil, nil
	}

	var urls, thumbs []string
	for _, header := range files {
		mimeType := header.Header.Get("Content-Type")
		if !utils.SupportedImageTypes[mimeType] {
			return nil, nil, fmt.Errorf("unsupported image type: %s", mimeType)
		}
		url, thumb, err := SaveImage(header, entity)
		if err != nil {
			return nil, nil, err
		}
		urls = append(urls, url)
		thumbs = append(thumbs, thumb)
	}
	return urls, thumbs, nil
}
