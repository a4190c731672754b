package server

import (
	"net/http"
	"sort"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/obriclabs/corpgraph/internal/handlers"
	"github.com/obriclabs/corpgraph/internal/middleware"
)

// Handlers groups the tool adapters the router mounts.
type Handlers struct {
	Entity       *handlers.EntityHandler
	Path         *handlers.PathHandler
	Relationship *handlers.RelationshipHandler
	Person       *handlers.PersonHandler
}

func NewRouter(h Handlers, mode string) *gin.Engine {
	if mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(otelgin.Middleware("corpgraph"))
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader},
	}))

	r.GET("/healthz", handlers.HealthCheck)

	tools := r.Group("/api/tools")
	routes := map[string]gin.HandlerFunc{
		"find_entity":                                   h.Entity.FindEntity,
		"search_entities":                               h.Entity.SearchEntities,
		"find_entities_by_relationship_text":            h.Entity.FindEntitiesByRelationshipText,
		"find_entities_by_relationship_embedding":       h.Entity.FindEntitiesByRelationshipEmbedding,
		"search_entities_semantic":                      h.Entity.SearchEntitiesBySemantics,
		"find_related_entities":                         h.Path.FindRelatedEntities,
		"find_tier_entities":                            h.Path.FindTierEntities,
		"has_directed_path":                             h.Path.HasDirectedPath,
		"find_directed_paths":                           h.Path.FindDirectedPaths,
		"find_directed_paths_with_relationship_details": h.Path.FindDirectedPathsWithRelationshipDetails,
		"find_paths_between":                            h.Path.FindPathsBetween,
		"find_relationship_details":                     h.Relationship.FindRelationshipDetails,
		"find_government_awards":                        h.Relationship.FindGovernmentAwards,
		"find_recent_insider_activities":                h.Relationship.FindRecentInsiderActivities,
		"query_person":                                  h.Person.QueryPerson,
		"find_people_by_entity":                         h.Person.FindPeopleByEntity,
		"find_person_entity_relationships":              h.Person.FindPersonEntityRelationships,
	}
	names := make([]string, 0, len(routes))
	for name, fn := range routes {
		tools.POST("/"+name, fn)
		names = append(names, name)
	}
	sort.Strings(names)
	tools.GET("", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"tools": names})
	})

	return r
}
