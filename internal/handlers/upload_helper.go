package handlers

import (
	"io"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/crm-dashboard/internal/avatar"
	"github.com/BruksfildServices01/crm-dashboard/internal/httperr"
	ucclient "github.com/BruksfildServices01/crm-dashboard/internal/usecase/client"
)

// readAvatarUpload extrai o arquivo "avatar" do multipart, se houver.
// Requests JSON (sem arquivo) retornam nil sem erro. Só imagens, até 5MB.
func readAvatarUpload(c *gin.Context) (*ucclient.AvatarUpload, error) {
	if !strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		return nil, nil
	}

	fh, err := c.FormFile("avatar")
	if err != nil {
		// multipart sem campo avatar: operação sem troca de imagem
		return nil, nil
	}

	if fh.Size > avatar.MaxUploadBytes {
		return nil, httperr.ErrValidation("file_too_large")
	}

	contentType := fh.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return nil, httperr.ErrValidation("unsupported_file_type")
	}

	f, err := fh.Open()
	if err != nil {
		return nil, httperr.ErrValidation("unreadable_upload")
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, avatar.MaxUploadBytes+1))
	if err != nil {
		return nil, httperr.ErrValidation("unreadable_upload")
	}
	if len(data) > avatar.MaxUploadBytes {
		return nil, httperr.ErrValidation("file_too_large")
	}

	return &ucclient.AvatarUpload{
		Data:        data,
		ContentType: contentType,
	}, nil
}
