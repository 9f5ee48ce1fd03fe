package main

import (
	"filingflow/account"
	"filingflow/archive"
	"filingflow/bizerror"
	"filingflow/client/s3"
	"filingflow/common"
	"filingflow/domain"
	"filingflow/es"
	"filingflow/event"
	"filingflow/indices"
	"filingflow/infra/tracing"
	"filingflow/persistence"
	"filingflow/servehttp"
	"filingflow/session"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

func main() {
	log.Println("service start")

	dbConfig, err := persistence.ParseDatabaseConfigFromEnv()
	if err != nil {
		log.Fatalf("parse database config failed %v\n", err)
	}

	// create database (no conflict)
	if dbConfig.DriverType == "mysql" {
		if err := persistence.PrepareMysqlDatabase(dbConfig.DriverArgs); err != nil {
			log.Fatalf("failed to prepare database %v\n", err)
		}
	}

	// connect database
	ds := &persistence.DataSourceManager{DatabaseConfig: dbConfig}
	if err := ds.Start(); err != nil {
		log.Fatalf("database conneciton failed %v\n", err)
	}
	defer ds.Stop()
	persistence.ActiveDataSourceManager = ds

	// database migration (race condition)
	err = ds.GormDB().AutoMigrate(&domain.Filing{}, &domain.FilingHistoryEntry{}, &domain.Client{},
		&event.EventRecord{}, &account.Operator{}).Error
	if err != nil {
		log.Fatalf("database migration failed %v\n", err)
	}

	closer, err := tracing.StartTracer()
	if err != nil {
		log.Fatalf("tracer start failed %v\n", err)
	}
	defer closer.Close()

	if err := es.StartESClient(); err != nil {
		log.Fatalf("elasticsearch client start failed %v\n", err)
	}
	s3.Bootstrap()

	event.EventHandlers = append(event.EventHandlers,
		indices.IndexFilingEventHandle, archive.ArchiveFilingEventHandle)

	engine := gin.Default()
	engine.Use(bizerror.ErrorHandling(), tracing.TracingIngress())
	engine.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, common.GetServiceName())
	})

	account.RegisterSessionsHandler(engine)

	servehttp.RegisterFilingHandler(engine, session.SimpleAuthFilter())
	servehttp.RegisterStageTransitionHandler(engine, session.SimpleAuthFilter())
	servehttp.RegisterFilingHistoryHandler(engine, session.SimpleAuthFilter())
	servehttp.RegisterRolloverHandler(engine, session.SimpleAuthFilter())
	indices.RegisterIndicesRestAPI(engine, session.SimpleAuthFilter())

	servehttp.StartHTTPServer(engine)
}
