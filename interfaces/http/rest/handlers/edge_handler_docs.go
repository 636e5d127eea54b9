package handlers

// This file contains OpenAPI/Swagger documentation for EdgeHandler endpoints

// Connect creates an edge between two nodes
// @Summary Connect two nodes
// @Description Appends an animated straight edge with id "e" plus the edge count plus one. Endpoints are not checked against existing nodes.
// @Tags edges
// @Accept json
// @Produce json
// @Param request body ConnectRequest true "Source and target node ids"
// @Success 201 {object} entities.Edge "Edge created"
// @Failure 400 {object} errors.ErrorResponse "Missing source or target"
// @Failure 503 {object} errors.ErrorResponse "Circuit breaker open"
// @Router /edges [post]

// DeleteEdge deletes edges by id
// @Summary Delete an edge
// @Description Removes every edge with the id. An absent id is a no-op.
// @Tags edges
// @Param edgeID path string true "Edge ID"
// @Success 204 "Deleted, or nothing matched"
// @Failure 503 {object} errors.ErrorResponse "Circuit breaker open"
// @Router /edges/{edgeID} [delete]
