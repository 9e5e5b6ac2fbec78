package main

import (
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"deserve-iq/controllers"
	"deserve-iq/driver"
	"deserve-iq/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment")
	}
	if os.Getenv("SECRET") == "" {
		log.Fatal("SECRET variable is not set")
	}

	db := driver.ConnectDB()
	defer db.Close()
	driver.MigrateDB(db)

	timeout := 30 * time.Second
	if v := os.Getenv("ML_API_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			timeout = time.Duration(n) * time.Second
		}
	}
	ml := services.NewMLService(os.Getenv("ML_API_URL"), os.Getenv("ML_API_PREDICT_ENDPOINT"), timeout)
	log.Println("ML predict endpoint: " + ml.PredictURL())

	students := &services.StudentService{DB: db}
	batch := &services.BatchService{ML: ml, Students: students}

	authController := controllers.NewAuthController()
	healthController := controllers.HealthController{}
	predictionController := controllers.PredictionController{}
	studentController := controllers.StudentController{}

	router := mux.NewRouter()
	router.HandleFunc("/auth/login", authController.Login()).Methods("POST")
	router.HandleFunc("/health", healthController.Health()).Methods("GET")

	api := router.PathPrefix("/api").Subrouter()
	api.Use(authController.TokenVerifyMiddleware)
	api.HandleFunc("/predict/single", predictionController.PredictSingle(ml)).Methods("POST")
	api.HandleFunc("/predict/batch", predictionController.PredictBatch(batch)).Methods("POST")
	api.HandleFunc("/students", studentController.GetStudents(students)).Methods("GET")
	api.HandleFunc("/students", studentController.CreateStudent(students)).Methods("POST")
	api.HandleFunc("/students/{id}", studentController.GetStudent(students)).Methods("GET")
	api.HandleFunc("/students/{id}", studentController.DeleteStudent(students)).Methods("DELETE")

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{
			"http://localhost:3000",
			"https://deserveiq-maatram-2026.netlify.app",
		}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE"}),
		handlers.AllowedHeaders([]string{"Authorization", "Content-Type"}),
		handlers.AllowCredentials(),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}
	log.Println("Server started on port " + port)
	log.Fatal(http.ListenAndServe(":"+port, cors(router)))
}
