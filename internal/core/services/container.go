package services

import (
	portsrepo "github.com/SscSPs/loan_report_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/loan_report_app/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(extractor portssvc.TextExtractor, repo portsrepo.LoanRepository, sinks []portssvc.ReportSink) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Ingestion = NewIngestionService(extractor, repo)
	container.Reporting = NewReportingService(repo)
	container.Pipeline = NewPipelineService(container.Ingestion, container.Reporting, sinks)

	return container
}
