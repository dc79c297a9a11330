package controllers

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"path/filepath"

	"github.com/gorilla/mux"
	"github.com/staynest/mono-repo/backend/services/marketplace-service/internal/constants"
	"github.com/staynest/mono-repo/backend/services/marketplace-service/internal/services"
	internal_utils "github.com/staynest/mono-repo/backend/services/marketplace-service/internal/utils"
	"github.com/staynest/mono-repo/backend/shared/go-utils"
)

type PhotoController struct {
	photos services.PhotoStore
}

func NewPhotoController(photos services.PhotoStore) *PhotoController {
	return &PhotoController{photos: photos}
}

// GetPhotoHandler => GET /api/v1/photos/{name}
func (c *PhotoController) GetPhotoHandler(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	rc, err := c.photos.Open(r.Context(), name)
	if errors.Is(err, internal_utils.ErrPhotoNotFound) || errors.Is(err, internal_utils.ErrInvalidPhotoName) {
		utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, constants.MsgNotFound, nil, err)
		return
	}
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Failed to load photo", nil, err)
		return
	}
	defer rc.Close()

	contentType := mime.TypeByExtension(filepath.Ext(name))
	if contentType == "" {
		contentType = constants.PhotoContentType
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", constants.PhotoCacheControl)
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, rc); err != nil {
		utils.Logger.WithError(err).WithField("photo", name).Warn("Photo stream interrupted")
	}
}
