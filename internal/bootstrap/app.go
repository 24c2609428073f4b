package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"migration-backend/internal/analyzer"
	githubauth "migration-backend/internal/auth"
	"migration-backend/internal/githubclient"
	"migration-backend/internal/migration"
	"migration-backend/internal/repositories"
	"migration-backend/internal/scan"
	"migration-backend/internal/shared/config"
	"migration-backend/internal/shared/server"
	"migration-backend/internal/shared/storage/db"
	"migration-backend/internal/sonar"
)

// App holds shared dependencies.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB

	AnalysesRepo      repositories.Repo
	RepositoryService *repositories.Service
	ScanService       *scan.Service
	SonarService      *sonar.Service
	MigrationService  *migration.Service

	RepositoryHandler *repositories.Handler
	ScanHandler       *scan.Handler
	SonarHandler      *sonar.Handler
	MigrationHandler  *migration.Handler
	GitHubAuth        *githubauth.GitHubService
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
	}
	buildServices(app)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:            app.Config,
		RepositoryHandler: app.RepositoryHandler,
		ScanHandler:       app.ScanHandler,
		SonarHandler:      app.SonarHandler,
		MigrationHandler:  app.MigrationHandler,
		GitHubAuth:        app.GitHubAuth,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: migrations failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	return sqlDB, nil
}

func buildServices(app *App) {
	var analysisRepo repositories.Repo
	if app.DB != nil {
		analysisRepo = &repositories.PGRepo{DB: app.DB}
	} else {
		analysisRepo = repositories.NewMemoryRepo()
	}

	an := &analyzer.Analyzer{}
	repoSvc := repositories.NewService(
		analysisRepo,
		an,
		app.Config.WorkDir,
		0,
		func(token string) repositories.Cloner {
			return &githubclient.Cloner{Token: token}
		},
		func(token string) repositories.InfoFetcher {
			return githubclient.NewClient(token, nil)
		},
	)

	scanSvc := scan.NewService(app.Config.FossaAPIKey, app.Config.FossaProjectLocator)
	sonarSvc := sonar.NewService(app.Config.SonarURL, app.Config.SonarToken)
	migrationSvc := &migration.Service{}

	app.AnalysesRepo = analysisRepo
	app.RepositoryService = repoSvc
	app.ScanService = scanSvc
	app.SonarService = sonarSvc
	app.MigrationService = migrationSvc

	app.RepositoryHandler = repositories.NewHandler(repoSvc)
	app.ScanHandler = scan.NewHandler(scanSvc, app.Config.WorkDir, func(token string) scan.Cloner {
		return &githubclient.Cloner{Token: token}
	})
	app.SonarHandler = sonar.NewHandler(sonarSvc)
	app.MigrationHandler = migration.NewHandler(migrationSvc, app.Config.WorkDir, func(token string) migration.Cloner {
		return &githubclient.Cloner{Token: token}
	})
	app.GitHubAuth = githubauth.NewGitHubService(
		app.Config.GitHubClientID,
		app.Config.GitHubClientSecret,
		app.Config.GitHubRedirectURL,
		app.Config.UIRedirectURL,
	)
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
