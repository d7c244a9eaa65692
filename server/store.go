package server

import (
	"sync"

	"github.com/google/uuid"

	"award_vetter/generator"
	"award_vetter/publisher"
)

// Flash 是只在下一次渲染页面时显示一次的提示。
type Flash struct {
	Level   string
	Message string
}

// workspace 是单个操作员的状态。mu 在整个请求期间持有，同一会话的操作串行执行。
type workspace struct {
	mu            sync.Mutex
	session       *generator.Session
	batch         publisher.Batch
	authenticated bool
	form          generator.Form
	flashes       []Flash
}

func (w *workspace) flash(level, msg string) {
	w.flashes = append(w.flashes, Flash{Level: level, Message: msg})
}

func (w *workspace) takeFlashes() []Flash {
	out := w.flashes
	w.flashes = nil
	return out
}

// clearForm 清空个人信息，保留奖项、职务、单位和月份供下一条使用。
func (w *workspace) clearForm() {
	w.form = generator.Form{
		Award: w.form.Award,
		Role:  w.form.Role,
		Unit:  w.form.Unit,
		Month: w.form.Month,
	}
}

// sessionStore 只保存已登录的工作区；未登录请求使用临时工作区，不落入 map。
type sessionStore struct {
	mu         sync.Mutex
	workspaces map[string]*workspace
	agent      *generator.Agent
}

func newStore(agent *generator.Agent) *sessionStore {
	return &sessionStore{workspaces: make(map[string]*workspace), agent: agent}
}

func (s *sessionStore) get(id string) (*workspace, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ws, ok := s.workspaces[id]
	return ws, ok
}

// create 在登录成功时调用，每次返回新的会话 ID。
func (s *sessionStore) create() (string, *workspace) {
	id := uuid.NewString()
	ws := &workspace{session: generator.NewSession(id, s.agent), authenticated: true}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.workspaces[id] = ws
	return id, ws
}

func (s *sessionStore) delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.workspaces, id)
}

func (s *sessionStore) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.workspaces)
}
