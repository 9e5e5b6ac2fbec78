package controllers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"deserve-iq/models"
	"deserve-iq/services"
	"deserve-iq/utils"
)

// StudentController exposes the administrative CRUD over persisted
// records. The batch pipeline does not go through these handlers.
type StudentController struct{}

func (sc StudentController) GetStudents(students *services.StudentService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := students.List()
		if err != nil {
			log.Printf("SQL Error: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to get students"})
			return
		}
		if list == nil {
			list = []models.Student{}
		}
		utils.ResponseJSON(w, list)
	}
}

func (sc StudentController) GetStudent(students *services.StudentService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Invalid student id"})
			return
		}

		student, err := students.Get(id)
		if err == sql.ErrNoRows {
			utils.RespondWithError(w, http.StatusNotFound, models.Error{Message: "Student not found"})
			return
		}
		if err != nil {
			log.Printf("SQL Error: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to get student"})
			return
		}

		utils.ResponseJSON(w, student)
	}
}

func (sc StudentController) CreateStudent(students *services.StudentService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var student models.Student
		if err := json.NewDecoder(r.Body).Decode(&student); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Invalid request body"})
			return
		}

		if err := students.Save(&student); err != nil {
			log.Printf("SQL Error: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to create student"})
			return
		}

		utils.ResponseJSON(w, student)
	}
}

func (sc StudentController) DeleteStudent(students *services.StudentService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Invalid student id"})
			return
		}

		if err := students.Delete(id); err != nil {
			log.Printf("SQL Error: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to delete student"})
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
