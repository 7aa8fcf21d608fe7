package admin

import (
	"errors"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"warungku/backend"
	"warungku/middleware"
	"warungku/models"
	"warungku/utils"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
)

// Handlers back the admin panel: menu management, order management and the
// printable artifacts.
type Handlers struct {
	API *backend.Client
	// UploadDir stages processed images before they are pushed upstream.
	UploadDir string
	// CatalogBase is the public URL tables point their QR codes at.
	CatalogBase string
}

func NewHandlers(api *backend.Client, uploadDir, catalogBase string) *Handlers {
	return &Handlers{API: api, UploadDir: uploadDir, CatalogBase: catalogBase}
}

// ListMenu returns the full menu for the admin table.
func (h *Handlers) ListMenu(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()
	s, _ := middleware.SessionFrom(ctx)

	items, err := h.API.Menu(ctx, "")
	if err != nil {
		if backend.IsAuthFailure(err) {
			middleware.ForceLogout(w, r, s)
			return
		}
		log.Println("Admin ListMenu error:", err)
		utils.RespondWithError(w, http.StatusBadGateway, "Failed to fetch menu")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, items)
}

// menuForm reads the multipart menu form. The picture is a tagged variant:
// a freshly picked file becomes PendingUpload, an untouched remote path stays
// Remote, and neither means Absent.
func (h *Handlers) menuForm(r *http.Request) (models.MenuItem, models.ImageRef, error) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		return models.MenuItem{}, models.ImageRef{}, err
	}

	price, _ := strconv.Atoi(r.FormValue("price"))
	item := models.MenuItem{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		Category:    r.FormValue("category"),
		Price:       price,
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		// No new file picked; keep whatever URL the form carried.
		return item, models.RemoteImage(r.FormValue("imageUrl")), nil
	}
	defer file.Close()

	if err := utils.ValidateImageFileType(header); err != nil {
		return item, models.ImageRef{}, err
	}

	img, err := imaging.Decode(file)
	if err != nil {
		return item, models.ImageRef{}, err
	}

	// Menu photos are normalized to 800px wide JPEGs before upload.
	if img.Bounds().Dx() > 800 {
		img = imaging.Resize(img, 800, 0, imaging.Lanczos)
	}
	name := uuid.NewString() + filepath.Ext(utils.SanitizeFilename(header.Filename))
	if filepath.Ext(name) == "" {
		name += ".jpg"
	}
	staged := filepath.Join(h.UploadDir, name)
	if err := os.MkdirAll(h.UploadDir, 0755); err != nil {
		return item, models.ImageRef{}, err
	}
	if err := imaging.Save(img, staged); err != nil {
		return item, models.ImageRef{}, err
	}
	return item, models.PendingImage(staged), nil
}

// formErrorMessage keeps the upload-type rejection specific and everything
// else generic.
func formErrorMessage(err error) string {
	if errors.Is(err, utils.ErrUnsupportedImageType) {
		return "Invalid file type. Supported formats: JPEG, PNG, WebP, GIF."
	}
	return "Invalid menu form"
}

// pushImage performs the dependent image step after the entity call
// succeeded. Its failure is reported as a warning, never a rollback: the
// menu item already persists upstream.
func (h *Handlers) pushImage(r *http.Request, token string, menuID int, ref models.ImageRef) (string, string) {
	if ref.Kind != models.ImagePendingUpload {
		return ref.URL, ""
	}
	defer os.Remove(ref.LocalPath)

	url, err := h.API.UploadMenuImage(r.Context(), token, menuID, ref.LocalPath)
	if err != nil {
		log.Println("Admin image upload error:", err)
		return "", "Menu tersimpan, tetapi upload gambar gagal"
	}
	return url, ""
}

// CreateMenu creates the entity first, then attaches the image.
func (h *Handlers) CreateMenu(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()
	s, _ := middleware.SessionFrom(ctx)
	token, _ := s.Credential(ctx)

	item, ref, err := h.menuForm(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, formErrorMessage(err))
		return
	}
	if item.Name == "" || item.Price <= 0 || item.Category == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Name, price and category are required")
		return
	}

	created, err := h.API.CreateMenuItem(ctx, token, item)
	if err != nil {
		if backend.IsAuthFailure(err) {
			middleware.ForceLogout(w, r, s)
			return
		}
		log.Println("Admin CreateMenu error:", err)
		utils.RespondWithError(w, http.StatusBadGateway, "Failed to create menu item")
		return
	}

	imageURL, warning := h.pushImage(r, token, created.MenuID, ref)
	created.ImageURL = imageURL

	resp := utils.M{"item": created}
	if warning != "" {
		resp["warning"] = warning
	}
	utils.RespondWithJSON(w, http.StatusCreated, resp)
}

// UpdateMenu edits the entity, then the image as a separate non-fatal step.
func (h *Handlers) UpdateMenu(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	s, _ := middleware.SessionFrom(ctx)
	token, _ := s.Credential(ctx)

	menuID, err := strconv.Atoi(ps.ByName("menuId"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid menu id")
		return
	}

	item, ref, err := h.menuForm(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, formErrorMessage(err))
		return
	}
	item.MenuID = menuID

	if err := h.API.UpdateMenuItem(ctx, token, item); err != nil {
		if backend.IsAuthFailure(err) {
			middleware.ForceLogout(w, r, s)
			return
		}
		if backend.IsStatus(err, http.StatusNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Menu item not found")
			return
		}
		log.Println("Admin UpdateMenu error:", err)
		utils.RespondWithError(w, http.StatusBadGateway, "Failed to update menu item")
		return
	}

	imageURL, warning := h.pushImage(r, token, menuID, ref)
	if imageURL != "" {
		item.ImageURL = imageURL
	}

	resp := utils.M{"item": item}
	if warning != "" {
		resp["warning"] = warning
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

func (h *Handlers) DeleteMenu(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	s, _ := middleware.SessionFrom(ctx)
	token, _ := s.Credential(ctx)

	menuID, err := strconv.Atoi(ps.ByName("menuId"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid menu id")
		return
	}

	if err := h.API.DeleteMenuItem(ctx, token, menuID); err != nil {
		if backend.IsAuthFailure(err) {
			middleware.ForceLogout(w, r, s)
			return
		}
		if backend.IsStatus(err, http.StatusNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Menu item not found")
			return
		}
		log.Println("Admin DeleteMenu error:", err)
		utils.RespondWithError(w, http.StatusBadGateway, "Failed to delete menu item")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"deleted": menuID})
}
