package handlers

// This file contains OpenAPI/Swagger documentation for GraphHandler endpoints

// GetGraph returns the current graph
// @Summary Get the graph
// @Description Returns every node and edge in insertion order with the store revision.
// @Tags graph
// @Produce json
// @Success 200 {object} aggregates.Snapshot "Current graph"
// @Failure 503 {object} errors.ErrorResponse "Circuit breaker open"
// @Router /graph [get]
