package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"github.com/vitamong/class-recoreder-v2/app/config"
	"github.com/vitamong/class-recoreder-v2/app/database"
	"github.com/vitamong/class-recoreder-v2/app/routes/attendance"
	"github.com/vitamong/class-recoreder-v2/app/routes/backup"
	"github.com/vitamong/class-recoreder-v2/app/routes/classes"
	"github.com/vitamong/class-recoreder-v2/app/routes/courses"
	"github.com/vitamong/class-recoreder-v2/app/routes/progress"
	"github.com/vitamong/class-recoreder-v2/app/routes/students"
	"github.com/vitamong/class-recoreder-v2/app/services"
	"github.com/vitamong/class-recoreder-v2/app/storage"
)

// errorHandler renders every unhandled error as JSON.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   err.Error(),
		"code":    code,
	})
}

// menuViews lists the six management views of the tool.
var menuViews = []fiber.Map{
	{"name": "courses", "title": "Course management", "path": "/api/courses"},
	{"name": "classes", "title": "Class management", "path": "/api/classes"},
	{"name": "students", "title": "Student management", "path": "/api/classes/:classId/students"},
	{"name": "progress", "title": "Progress management", "path": "/api/classes/:classId/progress"},
	{"name": "attendance", "title": "Attendance management", "path": "/api/attendance/class/:classId/date/:date"},
	{"name": "backup", "title": "Data backup", "path": "/api/backup/export"},
}

func main() {
	ctx := context.Background()

	cfg := config.Load()
	clients, err := config.InitClients(ctx, cfg)
	if err != nil {
		log.Fatal("Failed to initialize external clients: ", err)
	}
	defer clients.Firestore.Close()

	stores := database.NewFirestoreStore(clients.Firestore).Stores()

	var plans storage.PlanStore
	if clients.Bucket != nil {
		plans = storage.NewBucketPlanStore(clients.Bucket, cfg.StorageBucket)
	} else {
		log.Println("FIREBASE_STORAGE_BUCKET not set, keeping lesson plans in memory")
		plans = storage.NewMemoryPlanStore()
	}

	backupSvc := services.NewBackupService(services.NewGoogleSheetWriter(clients.Sheets), stores)

	app := fiber.New(fiber.Config{
		ErrorHandler: errorHandler,
		// Leave headroom over the plan size cap so oversized uploads
		// reach the handler and get a descriptive rejection.
		BodyLimit: storage.MaxPlanSize + 1<<20,
	})

	// Middleware
	app.Use(logger.New())
	app.Use(cors.New())

	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/api/menu")
	})
	app.Get("/api/menu", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"views": menuViews})
	})

	// Routes
	courses.RegisterRoutes(app, stores.Courses, plans)
	classes.RegisterRoutes(app, stores.Classes, stores.Courses)
	students.RegisterRoutes(app, stores.Students, stores.Classes)
	progress.RegisterRoutes(app, stores.Progress, stores.Classes)
	attendance.RegisterRoutes(app, stores.Attendance, stores.Students, stores.Classes)
	backup.RegisterRoutes(app, backupSvc, cfg.BackupSpreadsheetID)

	log.Printf("Starting server on port %s", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}
