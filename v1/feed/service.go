package feed

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strings"

	"github.com/Aleph-Alpha/discovery/v1/catalog"
	"github.com/Aleph-Alpha/discovery/v1/logger"
	"github.com/Aleph-Alpha/discovery/v1/minio"
)

// Organizations is implemented by catalog.Store.
type Organizations interface {
	OrganizationByHost(ctx context.Context, domain, subdomain string) (*catalog.Organization, error)
}

// Objects is implemented by *minio.MinioClient.
type Objects interface {
	Get(ctx context.Context, key string) (*minio.Object, error)
}

// Service finds an organization's published feed files.
type Service struct {
	orgs    Organizations
	objects Objects
	log     logger.Logger
}

func NewService(orgs Organizations, objects Objects, log logger.Logger) *Service {
	if log == nil {
		log = logger.NewNop()
	}
	return &Service{orgs: orgs, objects: objects, log: log}
}

// Feed returns the JSON document filename published for the organization
// serving host. Failures are *Error values except for backend errors.
func (s *Service) Feed(ctx context.Context, host, filename string) (json.RawMessage, error) {
	if !strings.HasSuffix(filename, ".json") {
		return nil, ErrNotJSON
	}

	org, err := s.organization(ctx, host)
	if err != nil {
		return nil, err
	}

	for _, key := range Keys(org.URN, filename) {
		obj, err := s.objects.Get(ctx, key)
		if errors.Is(err, minio.ErrObjectNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if !json.Valid(obj.Data) {
			s.log.ErrorWithContext(ctx, "feed file is not valid JSON", nil, map[string]interface{}{"key": key})
			return nil, &Error{Status: http.StatusInternalServerError, Detail: "Invalid feed format"}
		}
		return json.RawMessage(obj.Data), nil
	}

	s.log.WarnWithContext(ctx, "feed file not found", nil, map[string]interface{}{
		"organization": org.URN,
		"filename":     filename,
	})
	return nil, ErrFeedNotFound
}

// organization resolves host by custom domain first, then by its first
// label as subdomain.
func (s *Service) organization(ctx context.Context, host string) (*catalog.Organization, error) {
	host = stripPort(host)
	if host == "" {
		return nil, ErrMissingHost
	}

	subdomain := ""
	if labels := strings.Split(host, "."); len(labels) >= 2 {
		subdomain = labels[0]
	}

	org, err := s.orgs.OrganizationByHost(ctx, host, subdomain)
	switch {
	case errors.Is(err, catalog.ErrNotFound) && subdomain == "":
		return nil, ErrNoSubdomain
	case errors.Is(err, catalog.ErrNotFound):
		return nil, organizationNotFound(host)
	case err != nil:
		return nil, err
	}
	if org.URN == "" {
		return nil, &Error{Status: http.StatusInternalServerError, Detail: "Organization URN not found"}
	}
	return org, nil
}

// Keys lists the object keys tried for a feed, in order.
func Keys(organizationURN, filename string) []string {
	return []string{
		organizationURN + "/" + filename,
		"feeds/" + organizationURN + "/" + filename,
	}
}

func stripPort(host string) string {
	host = strings.TrimSpace(host)
	if h, _, err := net.SplitHostPort(host); err == nil {
		return h
	}
	return host
}
