package maple

/*
Purpose: expose a Transactor's traffic counters over HTTP for local
debugging, in the orchestrator's gin.New()+gin.Recovery()+JSON-handler
style.
*/

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// StatsServer serves a Transactor's TransactorStats as JSON at GET
// /stats. It exists purely for interactive debugging of a running
// session; nothing in the core driver depends on it.
type StatsServer struct {
	transactor *Transactor
	engine     *gin.Engine
}

// NewStatsServer builds a StatsServer reporting on t.
func NewStatsServer(t *Transactor) *StatsServer {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &StatsServer{transactor: t, engine: engine}
	engine.GET("/stats", s.handleStats)

	return s
}

func (s *StatsServer) handleStats(c *gin.Context) {
	c.JSON(http.StatusOK, s.transactor.Stats())
}

// Run blocks serving HTTP on addr (e.g. ":6565").
func (s *StatsServer) Run(addr string) error {
	return s.engine.Run(addr)
}
