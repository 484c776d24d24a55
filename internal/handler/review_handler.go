package handlers

import (
	"net/http"
	"strings"

	"cateringCMS/internal/models"

	"github.com/gorilla/mux"
)

const reviewNotFound = "Review not found"

// ListReviews is the public listing; only approved reviews are ever returned.
func (h *Handlers) ListReviews(w http.ResponseWriter, r *http.Request) {
	status := strings.ToLower(r.URL.Query().Get("status"))
	if status != "" && status != models.ReviewApproved {
		WriteError(w, "Only approved reviews are public", http.StatusBadRequest)
		return
	}

	reviews, err := h.ReviewService.ListPublic(r.Context())
	if err != nil {
		writeServiceError(w, err, reviewNotFound)
		return
	}

	writeList(w, reviews, len(reviews))
}

func (h *Handlers) ListAllReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.ReviewService.ListAdmin(r.Context())
	if err != nil {
		writeServiceError(w, err, reviewNotFound)
		return
	}

	writeList(w, reviews, len(reviews))
}

func (h *Handlers) GetReview(w http.ResponseWriter, r *http.Request) {
	review, err := h.ReviewService.GetPublic(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err, reviewNotFound)
		return
	}

	writeData(w, review, "", http.StatusOK)
}

func (h *Handlers) SubmitReview(w http.ResponseWriter, r *http.Request) {
	var req models.CreateReviewRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	review, err := h.ReviewService.Submit(r.Context(), req)
	if err != nil {
		writeServiceError(w, err, reviewNotFound)
		return
	}

	writeData(w, review, "Review submitted and awaiting approval", http.StatusCreated)
}

func (h *Handlers) ApproveReview(w http.ResponseWriter, r *http.Request) {
	h.decideReview(w, r, models.ReviewApproved)
}

func (h *Handlers) RejectReview(w http.ResponseWriter, r *http.Request) {
	h.decideReview(w, r, models.ReviewRejected)
}

func (h *Handlers) decideReview(w http.ResponseWriter, r *http.Request, status string) {
	principal, ok := PrincipalFromContext(r.Context())
	if !ok {
		WriteError(w, "Not authorized", http.StatusUnauthorized)
		return
	}

	reviewID := mux.Vars(r)["id"]

	var (
		review *models.Review
		err    error
	)
	if status == models.ReviewApproved {
		review, err = h.ReviewService.Approve(r.Context(), reviewID, principal.AdminID)
	} else {
		review, err = h.ReviewService.Reject(r.Context(), reviewID, principal.AdminID)
	}
	if err != nil {
		writeServiceError(w, err, reviewNotFound)
		return
	}

	writeData(w, review, "Review "+status, http.StatusOK)
}

func (h *Handlers) DeleteReview(w http.ResponseWriter, r *http.Request) {
	if err := h.ReviewService.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeServiceError(w, err, reviewNotFound)
		return
	}

	writeSuccess(w, Response{Success: true, Message: "Review deleted"}, http.StatusOK)
}
