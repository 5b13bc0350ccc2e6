package routes

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/SuyashChavanOfficial/SKNCOE-NSS-Website-sub000/internal/config"
	"github.com/SuyashChavanOfficial/SKNCOE-NSS-Website-sub000/internal/handlers"
	"github.com/SuyashChavanOfficial/SKNCOE-NSS-Website-sub000/internal/middleware"
	"github.com/SuyashChavanOfficial/SKNCOE-NSS-Website-sub000/internal/service"
	"github.com/SuyashChavanOfficial/SKNCOE-NSS-Website-sub000/internal/store"
	"github.com/SuyashChavanOfficial/SKNCOE-NSS-Website-sub000/internal/utils"
)

func SetupRouter(client *mongo.Client, cfg config.Config, logger *zap.Logger) *mux.Router {
	db := client.Database(cfg.DatabaseName)

	volunteerStore := store.NewMongoVolunteerStore(db)
	activityStore := store.NewMongoActivityStore(db)
	attendanceStore := store.NewMongoAttendanceStore(db)

	var mailer service.Mailer
	if cfg.SMTPUsername != "" {
		mailer = utils.NewMailer(cfg)
	}

	coord := service.NewCoordinator(volunteerStore, attendanceStore, logger)
	volunteerSvc := service.NewVolunteerService(volunteerStore, coord, mailer, logger)
	activitySvc := service.NewActivityService(activityStore, volunteerStore, coord, logger)
	attendanceSvc := service.NewAttendanceService(attendanceStore, logger)

	volunteerHandler := handlers.NewVolunteerHandler(volunteerSvc, logger)
	activityHandler := handlers.NewActivityHandler(activitySvc, logger)
	attendanceHandler := handlers.NewAttendanceHandler(attendanceSvc, logger)

	router := mux.NewRouter()
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.Metrics)

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Server is healthy"))
	}).Methods("GET")
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	secret := []byte(cfg.JWTSecret)

	// Admin-gated surface: volunteer mutations and attendance marking.
	admin := router.PathPrefix("/api").Subrouter()
	admin.Use(middleware.RequireAdmin(secret))
	admin.HandleFunc("/volunteers", volunteerHandler.Create).Methods("POST")
	admin.HandleFunc("/volunteers/{id}", volunteerHandler.Update).Methods("PUT")
	admin.HandleFunc("/volunteers/{id}", volunteerHandler.Delete).Methods("DELETE")
	admin.HandleFunc("/attendance", attendanceHandler.Mark).Methods("PUT")

	// Signed-in surface. Activity mutations sit here on purpose: the catalog
	// service performs its own admin check and reports the authorization
	// error itself.
	authed := router.PathPrefix("/api").Subrouter()
	authed.Use(middleware.RequireIdentity(secret))
	authed.HandleFunc("/volunteers", volunteerHandler.List).Methods("GET")
	authed.HandleFunc("/volunteers/{id}", volunteerHandler.Get).Methods("GET")
	authed.HandleFunc("/activities", activityHandler.Create).Methods("POST")
	authed.HandleFunc("/activities", activityHandler.List).Methods("GET")
	authed.HandleFunc("/activities/{id}", activityHandler.Get).Methods("GET")
	authed.HandleFunc("/activities/{id}", activityHandler.Update).Methods("PUT")
	authed.HandleFunc("/activities/{id}", activityHandler.Delete).Methods("DELETE")
	authed.HandleFunc("/activities/{id}/interest", activityHandler.ToggleInterest).Methods("POST")
	authed.HandleFunc("/activities/{id}/interested", activityHandler.InterestedUsers).Methods("GET")
	authed.HandleFunc("/attendance/activity/{id}", attendanceHandler.ByActivity).Methods("GET")
	authed.HandleFunc("/attendance/volunteer/{id}", attendanceHandler.ByVolunteer).Methods("GET")

	return router
}
