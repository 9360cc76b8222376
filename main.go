package main

import (
	"context"
	"embed"
	"html/template"
	"log"
	"sync"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio/internal/contact"
	"github.com/Zachkp/portfolio/internal/counter"
	"github.com/Zachkp/portfolio/internal/mailer"
	"github.com/Zachkp/portfolio/internal/session"
	"github.com/Zachkp/portfolio/internal/store"
	"github.com/Zachkp/portfolio/internal/toast"
)

//go:embed templates/*.html
var templateFS embed.FS

// contactForm is one visitor's contact page: the form state plus its toasts.
type contactForm struct {
	ctrl   *contact.Controller
	toasts *toast.Center
}

// mailRelay forwards a stored message to the site owner.
type mailRelay interface {
	Send(m mailer.Mail) error
}

type server struct {
	cfg   Config
	store *store.Store
	relay mailRelay

	boards *session.Registry[*counter.Board]
	forms  *session.Registry[*contactForm]

	adminToken  string
	hashingSalt string

	// background visitor writes and mail relays
	bg sync.WaitGroup
}

func newServer(cfg Config, st *store.Store, relay mailRelay) *server {
	s := &server{cfg: cfg, store: st, relay: relay}

	s.boards = session.New(cfg.SessionTTL, func() *counter.Board {
		return counter.NewBoard(Stats, counter.WithDuration(cfg.CounterDuration))
	}, session.WithMaxEntries(cfg.SessionMax))

	sender := contact.NewHTTPSender(cfg.ContactEndpoint)
	s.forms = session.New(cfg.SessionTTL, func() *contactForm {
		center := toast.NewCenter()
		return &contactForm{
			ctrl:   contact.NewController(sender, center),
			toasts: center,
		}
	}, session.WithMaxEntries(cfg.SessionMax))

	s.initAdminToken()
	return s
}

func (s *server) routes() *gin.Engine {
	r := gin.Default()
	r.SetHTMLTemplate(template.Must(template.New("").ParseFS(templateFS, "templates/*.html")))

	r.Static("/images", "./images")
	r.Static("/static", "./static")

	r.Use(s.visitorTrackingMiddleware())

	r.GET("/", s.aboutPage)
	r.GET("/about", s.aboutPage)
	r.GET("/about/:view/counters/:key", s.revealCounter)
	r.GET("/about/:view/counters/:key/stream", s.streamCounter)

	r.GET("/contact", s.contactPage)
	r.POST("/contact/:form/field", s.changeField)
	r.POST("/contact/:form/submit", s.submitForm)
	r.GET("/contact/:form/toasts", s.listToasts)

	r.POST("/api/contact", s.createContact)

	s.setupAdminRoutes(r)
	return r
}

func main() {
	cfg := loadConfig()

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		log.Fatal("Failed to open database:", err)
	}
	defer st.Close()

	relay := mailer.NewRelay(cfg.Mail)
	if !relay.Configured() {
		log.Println("SMTP not configured: contact messages are stored but not mailed")
	}

	s := newServer(cfg, st, relay)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.boards.Janitor(ctx, time.Minute)
	go s.forms.Janitor(ctx, time.Minute)
	go s.cleanupOldVisitorData()

	log.Printf("Contact form posts to %s", cfg.ContactEndpoint)
	if err := s.routes().Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
