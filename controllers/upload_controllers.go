package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/andrelmbraga/barraquinha/utils"
)

const (
	uploadDir     = "public/uploads/menu_images"
	maxUploadSize = 5 << 20 // 5MB
)

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// UploadImage -> recebe a foto de um item do cardápio e devolve a URL
// pública servida por /uploads.
func UploadImage(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("nenhum arquivo enviado"))
		return
	}

	if file.Size > maxUploadSize {
		utils.RespondError(c, http.StatusBadRequest, errors.New("arquivo muito grande, máximo 5MB"))
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExts[ext] {
		utils.RespondError(c, http.StatusBadRequest, errors.New("apenas imagens são permitidas"))
		return
	}

	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, errors.New("erro ao preparar diretório de upload"))
		return
	}

	filename := fmt.Sprintf("%s%s", uuid.NewString(), ext)
	if err := c.SaveUploadedFile(file, filepath.Join(uploadDir, filename)); err != nil {
		utils.ErrorLogger.Printf("erro ao salvar upload: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, errors.New("erro ao salvar imagem"))
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Upload efetuado", gin.H{
		"url": "/uploads/menu_images/" + filename,
	})
}
