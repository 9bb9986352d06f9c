// Command seed loads a demo dataset into the configured SQLite file. It is a
// development tool and is never run by the API binary.
package main

import (
	"fmt"
	"time"

	"github.com/bienestar-escolar/backend/internal/config"
	"github.com/bienestar-escolar/backend/internal/db"
	"github.com/bienestar-escolar/backend/internal/models"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
)

func main() {
	log, _ := zap.NewProduction()
	defer log.Sync()

	cfg := config.Load()
	gdb, err := db.Open(cfg, log)
	if err != nil {
		log.Fatal("failed to open database", zap.Error(err))
	}
	if err := db.Migrate(gdb); err != nil {
		log.Fatal("failed to sync schema", zap.Error(err))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("123456789"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("failed to hash seed password", zap.Error(err))
	}

	users := make([]models.User, 0, 6)
	for i := 1; i <= 6; i++ {
		role := models.RoleUser
		staffType := "Docente"
		position := "Profesor"
		if i%2 == 1 {
			role = models.RoleAdmin
			staffType = "Directivo"
			position = "Director"
		}
		users = append(users, models.User{
			FirstName:  fmt.Sprintf("Usuario%d", i),
			LastName:   fmt.Sprintf("Apellido%d", i),
			Email:      fmt.Sprintf("usuario%d@example.com", i),
			Password:   string(hash),
			RUT:        fmt.Sprintf("%d-%d", 12345677+i, i%10),
			Role:       role,
			Permisos:   datatypes.JSON(`["VIEW","UPDATE"]`),
			StaffType:  staffType,
			Position:   position,
			Department: "Departamento General",
			Comuna:     "Providencia",
			Region:     "Metropolitana",
			IsActive:   true,
		})
	}
	if err := gdb.Create(&users).Error; err != nil {
		log.Fatal("failed to seed users", zap.Error(err))
	}

	students := make([]models.Student, 0, 8)
	for i := 1; i <= 8; i++ {
		students = append(students, models.Student{
			FirstName:        fmt.Sprintf("Estudiante%d", i),
			LastName:         fmt.Sprintf("Apellido%d", i),
			RUT:              fmt.Sprintf("%d-%d", 22345677+i, i%10),
			Email:            fmt.Sprintf("estudiante%d@example.com", i),
			Grade:            fmt.Sprintf("%d° Básico", (i%8)+1),
			AcademicYear:     "2025",
			Section:          "A",
			MatriculaNumber:  fmt.Sprintf("M-%04d", i),
			EnrollmentStatus: "Matriculado",
			Comuna:           "Providencia",
			Region:           "Metropolitana",
			Prevision:        "Fonasa",
			BeneficioJUNAEB:  i%2 == 0,
			Prioritario:      i%3 == 0,
			IsActive:         true,
		})
	}
	if err := gdb.Create(&students).Error; err != nil {
		log.Fatal("failed to seed students", zap.Error(err))
	}

	interventions := make([]models.Intervention, 0, len(students))
	for i, st := range students {
		interventions = append(interventions, models.Intervention{
			Title:         fmt.Sprintf("Caso de seguimiento %d", i+1),
			Description:   "Seguimiento de convivencia escolar",
			Type:          "Convivencia",
			Status:        "Abierta",
			Priority:      "Media",
			DateReported:  time.Now().AddDate(0, 0, -i),
			StudentID:     st.ID,
			InformerID:    users[i%len(users)].ID,
			ResponsibleID: users[(i+1)%len(users)].ID,
		})
	}
	if err := gdb.Create(&interventions).Error; err != nil {
		log.Fatal("failed to seed interventions", zap.Error(err))
	}

	comments := make([]models.InterventionComment, 0, len(interventions))
	for i, iv := range interventions {
		comments = append(comments, models.InterventionComment{
			Content:        fmt.Sprintf("Primer registro del caso %d", i+1),
			Tipo:           "Seguimiento",
			InterventionID: iv.ID,
			UserID:         users[i%len(users)].ID,
		})
	}
	if err := gdb.Create(&comments).Error; err != nil {
		log.Fatal("failed to seed comments", zap.Error(err))
	}

	log.Info("seed complete",
		zap.Int("users", len(users)),
		zap.Int("students", len(students)),
		zap.Int("interventions", len(interventions)),
		zap.Int("comments", len(comments)),
	)
}
