package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/medesi/portal/internal/common"
	"github.com/medesi/portal/internal/server/patients"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	UserType string `json:"user_type"`
}

type loginResponse struct {
	Token string `json:"token"`
}

type forgotPasswordRequest struct {
	Email    string `json:"email"`
	UserType string `json:"user_type"`
}

type profileUpdateRequest struct {
	FirstName   string `json:"firstName"`
	FamilyName  string `json:"familyName"`
	PhoneNumber string `json:"phoneNumber"`
}

type patientResponse struct {
	ID          int    `json:"id"`
	FamilyName  string `json:"familyName"`
	FirstName   string `json:"firstName"`
	Email       string `json:"email"`
	Age         int    `json:"age"`
	PhoneNumber string `json:"phoneNumber"`
	PatientType string `json:"patientType"`
}

func toPatientResponse(p *patients.Patient) patientResponse {
	return patientResponse{
		ID:          p.Number,
		FamilyName:  p.FamilyName,
		FirstName:   p.FirstName,
		Email:       p.Email,
		Age:         p.Age,
		PhoneNumber: p.PhoneNumber,
		PatientType: p.PatientType,
	}
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	token, err := s.patients.Login(r.Context(), req.Email, req.Password, req.UserType)
	if err != nil {
		if errors.Is(err, common.ErrUnauthorized) {
			writeMessage(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		s.internalError(w, r, err)
		return
	}

	s.logger.Info(r.Context(), "Logged in", "email", req.Email)
	writeJSON(w, http.StatusOK, loginResponse{Token: token})
}

func (s *Server) forgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := s.patients.ForgotPassword(r.Context(), req.Email, req.UserType); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			writeMessage(w, http.StatusNotFound, "Email not found")
			return
		}
		s.internalError(w, r, err)
		return
	}

	writeMessage(w, http.StatusOK, "Password reset link sent")
}

func (s *Server) getMe(w http.ResponseWriter, r *http.Request) {
	p, err := s.patients.Get(r.Context(), patientIDFrom(r.Context()))
	if err != nil {
		s.patientError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toPatientResponse(p))
}

func (s *Server) updateMe(w http.ResponseWriter, r *http.Request) {
	var req profileUpdateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	p, err := s.patients.UpdateProfile(r.Context(), patientIDFrom(r.Context()), patients.ProfileUpdate{
		FirstName:   req.FirstName,
		FamilyName:  req.FamilyName,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		s.patientError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toPatientResponse(p))
}

func (s *Server) getMedicalRecord(w http.ResponseWriter, r *http.Request) {
	rec, err := s.patients.MedicalRecord(r.Context(), patientIDFrom(r.Context()))
	if err != nil {
		s.patientError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// patientError maps service errors of authenticated routes. A token whose
// patient no longer exists is treated as invalid.
func (s *Server) patientError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrNotFound):
		writeMessage(w, http.StatusUnauthorized, common.ErrInvalidToken.Error())
	case errors.Is(err, common.ErrInvalidArgument):
		writeMessage(w, http.StatusBadRequest, err.Error())
	default:
		s.internalError(w, r, err)
	}
}

func (s *Server) internalError(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Error(r.Context(), err.Error(), "path", r.URL.Path)
	writeMessage(w, http.StatusInternalServerError, "internal error")
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", common.JSONContentType)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}
