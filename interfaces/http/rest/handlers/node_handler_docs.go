package handlers

// This file contains OpenAPI/Swagger documentation for NodeHandler endpoints

// CreateNode places a new node
// @Summary Create a node
// @Description Appends a node labelled "New Node" at a random position inside the viewport. The id is the node count plus one, so it may repeat an existing id after deletions.
// @Tags nodes
// @Accept json
// @Produce json
// @Param request body CreateNodeRequest false "Optional viewport; the configured default is used when omitted"
// @Success 201 {object} entities.Node "Node created"
// @Failure 400 {object} errors.ErrorResponse "Invalid viewport"
// @Failure 503 {object} errors.ErrorResponse "Circuit breaker open"
// @Router /nodes [post]

// DeleteNode deletes nodes by id
// @Summary Delete a node
// @Description Removes every node with the id. Edges that reference it are kept. An absent id is a no-op.
// @Tags nodes
// @Param nodeID path string true "Node ID"
// @Success 204 "Deleted, or nothing matched"
// @Failure 503 {object} errors.ErrorResponse "Circuit breaker open"
// @Router /nodes/{nodeID} [delete]

// UpdateLabel relabels a node
// @Summary Update a node label
// @Description Sets the label of the first node with the id. An absent id is a no-op.
// @Tags nodes
// @Accept json
// @Param nodeID path string true "Node ID"
// @Param request body UpdateLabelRequest true "New label"
// @Success 204 "Updated, or nothing matched"
// @Failure 400 {object} errors.ErrorResponse "Missing label"
// @Failure 503 {object} errors.ErrorResponse "Circuit breaker open"
// @Router /nodes/{nodeID}/label [put]
