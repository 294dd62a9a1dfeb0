package testing

import (
	"context"
	"testing"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/refresh"
	"github.com/testcontainers/testcontainers-go"
	tces "github.com/testcontainers/testcontainers-go/modules/elasticsearch"
	"github.com/testcontainers/testcontainers-go/wait"
)

const esImage = "docker.elastic.co/elasticsearch/elasticsearch:8.12.0"

// ESContainer is a single node Elasticsearch with a typed client attached
type ESContainer struct {
	Container testcontainers.Container
	Address   string
	Client    *elasticsearch.TypedClient
}

// NewESContainer starts Elasticsearch with security off and returns once the
// typed client can reach it. The container is terminated on test cleanup.
func NewESContainer(ctx context.Context, tb testing.TB) *ESContainer {
	tb.Helper()

	ctr, err := tces.Run(ctx, esImage,
		tces.WithPassword(""),
		testcontainers.WithWaitStrategy(
			wait.ForHTTP("/").WithPort("9200").WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		tb.Fatalf("failed to start elasticsearch container: %v", err)
	}
	tb.Cleanup(func() {
		if err := testcontainers.TerminateContainer(ctr); err != nil {
			tb.Logf("failed to terminate elasticsearch container: %v", err)
		}
	})

	addr, err := ctr.PortEndpoint(ctx, "9200/tcp", "http")
	if err != nil {
		tb.Fatalf("failed to resolve elasticsearch endpoint: %v", err)
	}

	client, err := elasticsearch.NewTypedClient(elasticsearch.Config{Addresses: []string{addr}})
	if err != nil {
		tb.Fatalf("failed to create elasticsearch client: %v", err)
	}
	if ok, err := client.Ping().IsSuccess(ctx); err != nil || !ok {
		tb.Fatalf("elasticsearch at %s is not reachable: %v", addr, err)
	}

	return &ESContainer{Container: ctr, Address: addr, Client: client}
}

// SeedIndex creates index with the given mappings and indexes docs by id.
// Writes refresh immediately so the documents are searchable on return.
func (c *ESContainer) SeedIndex(ctx context.Context, tb testing.TB, index string, mappings types.TypeMapping, docs map[string]any) {
	tb.Helper()

	if _, err := c.Client.Indices.Create(index).Mappings(&mappings).Do(ctx); err != nil {
		tb.Fatalf("failed to create index %s: %v", index, err)
	}
	for id, doc := range docs {
		if _, err := c.Client.Index(index).Id(id).Document(doc).Refresh(refresh.True).Do(ctx); err != nil {
			tb.Fatalf("failed to index %s/%s: %v", index, id, err)
		}
	}
}
