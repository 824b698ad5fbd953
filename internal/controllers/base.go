package controllers

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/drstein77/shopcart/internal/billing"
	"github.com/drstein77/shopcart/internal/compress"
	"github.com/drstein77/shopcart/internal/middleware"
	"github.com/drstein77/shopcart/internal/models"
)

const exportFileName = "items.csv"

// Storage interface for catalog and cart operations
type Storage interface {
	ListItems(context.Context) ([]models.Item, error)
	AddToCart(ctx context.Context, kind models.Kind, id int) (models.Item, error)
	RemoveFromCart(ctx context.Context, id int) (models.Item, error)
	ClearCart(context.Context) error
	CartTotal(context.Context) (models.Bill, error)
	Ping(context.Context) bool
}

// Log interface for logging
type Log interface {
	Info(string, ...zapcore.Field)
	Error(string, ...zapcore.Field)
}

// BaseController struct for handling requests
type BaseController struct {
	storage Storage
	log     Log
}

// NewBaseController creates a new BaseController instance
func NewBaseController(storage Storage, log Log) *BaseController {
	return &BaseController{
		storage: storage,
		log:     log,
	}
}

// Route sets up the routes for the BaseController
func (h *BaseController) Route() *chi.Mux {
	r := chi.NewRouter()
	r.NotFound(h.notFound)

	r.Get("/ping", h.ping)
	r.Get("/items", h.getItems)
	r.With(middleware.ArchiveTypeMiddleware).Get("/items/export", h.exportItems)

	r.Route("/cart", func(r chi.Router) {
		r.Post("/add", h.addToCart)
		r.Delete("/remove/{itemId}", h.removeFromCart)
		r.Post("/clear", h.clearCart)
		r.Get("/total", h.cartTotal)
	})

	r.Post("/account", h.createAccount)
	r.Post("/order/confirm", h.confirmOrder)

	return r
}

func (h *BaseController) ping(w http.ResponseWriter, r *http.Request) {
	if !h.storage.Ping(r.Context()) {
		writeError(w, http.StatusInternalServerError, "Storage unavailable")
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *BaseController) getItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.storage.ListItems(r.Context())
	if err != nil {
		h.log.Error("Failed to list items", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to retrieve items")
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *BaseController) exportItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.storage.ListItems(r.Context())
	if err != nil {
		h.log.Error("Failed to list items", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to retrieve items")
		return
	}

	archiveType := middleware.ArchiveType(r.Context())
	aw, err := compress.NewArchiveWriter(w, archiveType, exportFileName)
	if err != nil {
		h.log.Error("Failed to create archive", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to export items")
		return
	}

	// Headers must be set before the first write into the archive.
	w.Header().Set("Content-Type", compress.ContentType(archiveType))
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="items.%s"`, archiveType))

	cw := csv.NewWriter(aw)
	_ = cw.Write([]string{"id", "name", "price", "kind"})
	for _, it := range items {
		_ = cw.Write([]string{strconv.Itoa(it.ID), it.Name, strconv.FormatInt(it.Price, 10), it.Kind.String()})
	}
	cw.Flush()

	if err := cw.Error(); err != nil {
		h.log.Error("Failed to write export", zap.Error(err))
	}
	if err := aw.Close(); err != nil {
		h.log.Error("Failed to close archive", zap.Error(err))
	}
}

func (h *BaseController) addToCart(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var req models.AddToCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	kind, err := models.ParseKind(req.Type)
	if err != nil {
		writeError(w, http.StatusNotFound, "Item not found")
		return
	}

	item, err := h.storage.AddToCart(r.Context(), kind, req.ItemID)
	if err != nil {
		if errors.Is(err, models.ErrItemNotFound) {
			writeError(w, http.StatusNotFound, "Item not found")
			return
		}
		h.log.Error("Failed to add item to cart", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to add item to cart")
		return
	}

	h.log.Info("Item added to cart", zap.Int("id", item.ID), zap.Stringer("type", item.Kind))
	writeJSON(w, http.StatusOK, models.MessageResponse{Message: "Item added to cart successfully"})
}

func (h *BaseController) removeFromCart(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "itemId"))
	if err != nil {
		writeError(w, http.StatusNotFound, "Item not found in cart")
		return
	}

	if _, err := h.storage.RemoveFromCart(r.Context(), id); err != nil {
		if errors.Is(err, models.ErrItemNotFound) {
			writeError(w, http.StatusNotFound, "Item not found in cart")
			return
		}
		h.log.Error("Failed to remove item from cart", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to remove item from cart")
		return
	}

	writeJSON(w, http.StatusOK, models.MessageResponse{Message: "Item removed from cart successfully"})
}

func (h *BaseController) clearCart(w http.ResponseWriter, r *http.Request) {
	if err := h.storage.ClearCart(r.Context()); err != nil {
		h.log.Error("Failed to clear cart", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to clear cart")
		return
	}
	writeJSON(w, http.StatusOK, models.MessageResponse{Message: "Cart cleared successfully"})
}

func (h *BaseController) cartTotal(w http.ResponseWriter, r *http.Request) {
	bill, err := h.storage.CartTotal(r.Context())
	if err != nil {
		h.log.Error("Failed to compute bill", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to compute bill")
		return
	}

	resp := models.TotalResponse{
		TotalBill:  make([]models.LineItemResponse, 0, len(bill.Items)),
		TotalValue: billing.Round(bill.Total).InexactFloat64(),
	}
	for _, li := range bill.Items {
		resp.TotalBill = append(resp.TotalBill, models.LineItemResponse{
			ID:    li.ID,
			Name:  li.Name,
			Price: li.Price,
			Kind:  li.Kind,
			Tax:   billing.Round(li.Tax).InexactFloat64(),
		})
	}

	writeJSON(w, http.StatusOK, resp)
}

// createAccount is a stub: accounts are not stored.
func (h *BaseController) createAccount(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusCreated, models.MessageResponse{Message: "Account created successfully"})
}

// confirmOrder is a stub: orders are not stored and the cart is left as is.
func (h *BaseController) confirmOrder(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.MessageResponse{Message: "Order confirmed successfully"})
}

func (h *BaseController) notFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "Not found")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, models.ErrorResponse{Error: msg})
}
