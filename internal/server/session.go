package server

import (
	"fmt"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/jostly/terragen/internal/pipeline"
	"github.com/jostly/terragen/internal/terrain"
)

// defaultDistortFraction sets the distort degree, as a fraction of the edge
// count, when the client sends none.
const defaultDistortFraction = 0.01

type session struct {
	id     string
	conn   *websocket.Conn
	server *Server
	log    *zap.Logger

	gen       *terrain.Generator
	seed      uint64
	dual      bool
	wireframe bool
	// plates and merge persist so later actions keep showing plate borders.
	plates bool
	merge  bool
}

func newSession(id string, conn *websocket.Conn, s *Server) *session {
	sess := &session{
		id:     id,
		conn:   conn,
		server: s,
		log:    s.log.With(zap.String("session", id)),
	}
	sess.reset(0)
	return sess
}

func (s *session) reset(seed uint64) {
	rng, seed := pipeline.NewRNG(seed)
	s.gen = terrain.New(rng)
	s.seed = seed
	s.plates = false
	s.merge = false
}

// run sends the initial mesh and then serves requests until the connection
// closes.
func (s *session) run() {
	if err := s.execute(pipeline.Job{}, nil); err != nil {
		s.log.Warn("initial mesh failed", zap.Error(err))
		return
	}

	for {
		var req Request
		if err := s.conn.ReadJSON(&req); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.log.Debug("read failed", zap.Error(err))
			}
			return
		}
		if err := s.handle(req); err != nil {
			s.log.Debug("write failed", zap.Error(err))
			return
		}
	}
}

// handle runs one request. Only transport errors are returned; action
// failures are reported to the client.
func (s *session) handle(req Request) error {
	s.log.Debug("request", zap.String("action", req.Action), zap.Uint32("degree", req.Degree))

	if req.Dual != nil {
		s.dual = *req.Dual
	}
	if req.Wireframe != nil {
		s.wireframe = *req.Wireframe
	}

	job := pipeline.Job{}
	saturated := false

	switch req.Action {
	case ActionSubdivide:
		if int(s.gen.CurrentLevel()) >= s.server.cfg.MaxLevel {
			return s.sendError(fmt.Errorf("already at maximum level %d", s.server.cfg.MaxLevel))
		}
		job.Apply = func(g *terrain.Generator) error {
			g.Subdivide()
			return nil
		}
	case ActionDistort:
		degree := req.Degree
		if degree == 0 {
			degree = max(1, uint32(float64(s.gen.NumEdges())*defaultDistortFraction))
		}
		if degree > s.gen.NumEdges() {
			return s.sendError(fmt.Errorf("distort degree %d exceeds edge count %d", degree, s.gen.NumEdges()))
		}
		job.Apply = func(g *terrain.Generator) error {
			saturated = !g.Distort(degree)
			return nil
		}
	case ActionRelax:
		iterations := max(1, req.Degree)
		if limit := s.server.opts.MaxRelaxIterations; int64(iterations) > int64(limit) {
			return s.sendError(fmt.Errorf("relax degree %d exceeds limit %d", iterations, limit))
		}
		multiplier := s.server.opts.RelaxMultiplier
		job.Apply = func(g *terrain.Generator) error {
			for range iterations {
				g.Relax(multiplier)
			}
			return nil
		}
	case ActionPlates:
		s.plates, s.merge = true, false
		s.dual = true
	case ActionMerge:
		s.plates, s.merge = true, true
		s.dual = true
	case ActionReset:
		s.reset(req.Seed)
	case "":
		// Re-render with the current display options.
	default:
		return s.sendError(fmt.Errorf("unknown action %q", req.Action))
	}

	return s.execute(job, &saturated)
}

// execute hands the generator to the worker and sends the resulting mesh.
// saturated, if set, is written by the job and read once it completes.
func (s *session) execute(job pipeline.Job, saturated *bool) error {
	job.Generator = s.gen
	job.Plates = s.plates
	job.Merge = s.merge
	job.Dual = s.dual
	job.Wireframe = s.wireframe

	res := <-s.server.worker.Submit(job)
	if res.Generator != nil {
		s.gen = res.Generator
	}
	if res.Err != nil {
		return s.sendError(res.Err)
	}

	msg := MeshMessage{
		Type:      "mesh",
		Session:   s.id,
		Seed:      s.seed,
		Level:     s.gen.CurrentLevel(),
		Nodes:     s.gen.NumNodes(),
		Edges:     s.gen.NumEdges(),
		Faces:     s.gen.NumFaces(),
		Saturated: saturated != nil && *saturated,
		ElapsedMS: float64(res.Elapsed) / float64(time.Millisecond),
		Flat:      res.Mesh.Flatten(),
	}
	if res.Planet != nil {
		msg.Tiles = res.Planet.NumTiles()
		msg.Plates = len(res.Planet.Plates())
	}
	return s.write(msg)
}

func (s *session) sendError(err error) error {
	s.log.Debug("action failed", zap.Error(err))
	return s.write(ErrorMessage{Type: "error", Session: s.id, Error: err.Error()})
}

func (s *session) write(v any) error {
	if timeout := s.server.cfg.WriteTimeout; timeout > 0 {
		s.conn.SetWriteDeadline(time.Now().Add(timeout))
	}
	return s.conn.WriteJSON(v)
}
