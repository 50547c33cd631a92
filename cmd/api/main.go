package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/littlesprouts/daycare-backend-go/internal/config"
	appHTTP "github.com/littlesprouts/daycare-backend-go/internal/handler/http"
	"github.com/littlesprouts/daycare-backend-go/internal/pkg/database"
	"github.com/littlesprouts/daycare-backend-go/internal/pkg/jwt"
	"github.com/littlesprouts/daycare-backend-go/internal/repository/postgresql"
	employeeService "github.com/littlesprouts/daycare-backend-go/internal/service/employee"
	payrollService "github.com/littlesprouts/daycare-backend-go/internal/service/payroll"
	timesheetService "github.com/littlesprouts/daycare-backend-go/internal/service/timesheet"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	taxConfig, err := config.LoadTaxConfig(cfg.Payroll.TaxConfigPath)
	if err != nil {
		log.Fatal("Error loading tax config: ", err)
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		log.Fatal("Error connecting to database: ", err)
	}
	defer db.Close()

	logger := appHTTP.NewLogger(cfg.App.Env)

	employeeRepo := postgresql.NewEmployeeRepository(db)
	timesheetRepo := postgresql.NewTimesheetRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	empService := employeeService.NewService(employeeRepo)
	tsService := timesheetService.NewService(timesheetRepo, employeeRepo)
	prService := payrollService.NewService(payrollRepo, employeeRepo, timesheetRepo, taxConfig, logger)

	router := appHTTP.NewRouter(
		logger,
		jwtService,
		appHTTP.NewEmployeeHandler(empService),
		appHTTP.NewTimesheetHandler(tsService),
		appHTTP.NewPayrollHandler(prService),
	)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	logger.Info("server starting", "addr", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatal("Server error: ", err)
	}
}
