package timing

import (
	"context"
	"net/http"
)

const projectsCollection = "projects"

// ProjectsClient manages projects
type ProjectsClient struct {
	client *Client
}

// List retrieves projects. A nil query sends no parameters.
func (p *ProjectsClient) List(ctx context.Context, query *ProjectListQuery) ([]Project, error) {
	params, err := queryParams(query)
	if err != nil {
		return nil, err
	}

	return send[[]Project](ctx, p.client, &Request{
		Operation: "projects.list",
		Method:    http.MethodGet,
		Path:      "/projects",
		Query:     params,
	})
}

// Hierarchy retrieves the project tree, with children nested under their parents.
func (p *ProjectsClient) Hierarchy(ctx context.Context) ([]Project, error) {
	return send[[]Project](ctx, p.client, &Request{
		Operation: "projects.hierarchy",
		Method:    http.MethodGet,
		Path:      "/projects/hierarchy",
	})
}

// Get retrieves a single project by id or reference
func (p *ProjectsClient) Get(ctx context.Context, id string) (*Project, error) {
	path, err := resourcePath(projectsCollection, id)
	if err != nil {
		return nil, err
	}

	return send[*Project](ctx, p.client, &Request{
		Operation: "projects.get",
		Method:    http.MethodGet,
		Path:      path,
	})
}

// Create creates a project
func (p *ProjectsClient) Create(ctx context.Context, opts CreateProjectOptions) (*Project, error) {
	body, err := bodyPayload(opts)
	if err != nil {
		return nil, err
	}

	return send[*Project](ctx, p.client, &Request{
		Operation: "projects.create",
		Method:    http.MethodPost,
		Path:      "/projects",
		Body:      body,
	})
}

// Update applies a partial update to a project
func (p *ProjectsClient) Update(ctx context.Context, id string, opts UpdateProjectOptions) (*Project, error) {
	path, err := resourcePath(projectsCollection, id)
	if err != nil {
		return nil, err
	}
	body, err := bodyPayload(opts)
	if err != nil {
		return nil, err
	}

	return send[*Project](ctx, p.client, &Request{
		Operation: "projects.update",
		Method:    http.MethodPut,
		Path:      path,
		Body:      body,
	})
}

// Delete deletes a project. The response body is ignored.
func (p *ProjectsClient) Delete(ctx context.Context, id string) error {
	path, err := resourcePath(projectsCollection, id)
	if err != nil {
		return err
	}

	_, err = p.client.call(ctx, &Request{
		Operation: "projects.delete",
		Method:    http.MethodDelete,
		Path:      path,
	})
	return err
}

// DeleteMany deletes several projects concurrently and reports each outcome.
func (p *ProjectsClient) DeleteMany(ctx context.Context, ids []string) BatchResult {
	return deleteMany(ctx, ids, p.Delete)
}
