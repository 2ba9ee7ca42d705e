package main

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"

	"github.com/cognicore/wortart/internal/htmltext"
	"github.com/cognicore/wortart/pkg/wortart"
	"github.com/cognicore/wortart/pkg/wortart/classify"
	"github.com/cognicore/wortart/pkg/wortart/internalerr"
	"github.com/cognicore/wortart/pkg/wortart/store"
	"github.com/cognicore/wortart/pkg/wortart/wordtype"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// ---- JSON types ---------------------------------------------------------

type classifyResponse struct {
	Word   string          `json:"word"`
	Result classify.Result `json:"result"`
}

type annotateRequest struct {
	Text string `json:"text" binding:"required"`
}

type wordRequest struct {
	Word string `json:"word" binding:"required"`
	Type string `json:"type" binding:"required"`
	Rule string `json:"rule"`
}

type wordJSON struct {
	Word    string        `json:"word"`
	Type    wordtype.Type `json:"type"`
	Rule    string        `json:"rule,omitempty"`
	AddedAt time.Time     `json:"added_at"`
}

type historyJSON struct {
	ID         string          `json:"id"`
	Token      string          `json:"token"`
	Sentence   string          `json:"sentence,omitempty"`
	Type       wordtype.Type   `json:"type"`
	Rule       string          `json:"rule"`
	Confidence float64         `json:"confidence,omitempty"`
	Result     json.RawMessage `json:"result,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

func toWordJSON(w store.Word) wordJSON {
	return wordJSON{Word: w.Word, Type: w.Type, Rule: w.Rule, AddedAt: w.AddedAt}
}

// ---- router -------------------------------------------------------------

// newHandler wraps the router in the CORS middleware.
func newHandler(w *wortart.Wortart, origins []string) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         600,
	})
	return c.Handler(setupRouter(w))
}

func setupRouter(w *wortart.Wortart) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())

	h := &handlers{w: w}
	r.GET("/healthz", h.health)

	api := r.Group("/api")
	{
		api.GET("/classify", h.classify)
		api.POST("/annotate", h.annotate)
		api.POST("/annotate/html", h.annotateHTML)
		api.GET("/adjective", h.adjective)
		api.GET("/paradigm", h.paradigm)
		api.GET("/lexicon/words", h.listWords)
		api.POST("/lexicon/words", h.addWord)
		api.GET("/history", h.history)
	}
	return r
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		attrs := []any{
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		}
		if len(c.Errors) > 0 {
			slog.Warn("request failed", append(attrs, "error", c.Errors.String())...)
			return
		}
		slog.Debug("request", attrs...)
	}
}

// ---- handlers -----------------------------------------------------------

type handlers struct {
	w *wortart.Wortart
}

func (h *handlers) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"cache":  h.w.CacheStats(),
	})
}

func (h *handlers) classify(c *gin.Context) {
	word := c.Query("word")
	if word == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing word parameter"})
		return
	}
	var ctx classify.Context
	if sentence := c.Query("sentence"); sentence != "" {
		ctx = h.w.ContextFor(sentence, word)
	}

	r, err := h.w.ClassifyWord(c.Request.Context(), word, ctx)
	if err != nil {
		// the result is valid, only recording failed
		c.Error(err)
	}
	c.JSON(http.StatusOK, classifyResponse{Word: word, Result: r})
}

func (h *handlers) annotate(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)
	var req annotateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	out, err := h.w.AnnotateText(c.Request.Context(), req.Text)
	if err != nil {
		c.Error(err)
	}
	c.JSON(http.StatusOK, out)
}

func (h *handlers) annotateHTML(c *gin.Context) {
	text, err := htmltext.Text(http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	out, err := h.w.AnnotateText(c.Request.Context(), text)
	if err != nil {
		c.Error(err)
	}
	c.JSON(http.StatusOK, gin.H{
		"text":      text,
		"sentences": out.Sentences,
	})
}

func (h *handlers) adjective(c *gin.Context) {
	word := c.Query("word")
	if word == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing word parameter"})
		return
	}
	c.JSON(http.StatusOK, h.w.AnalyzeAdjective(word))
}

func (h *handlers) paradigm(c *gin.Context) {
	lemma := c.Query("lemma")
	if lemma == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing lemma parameter"})
		return
	}
	c.JSON(http.StatusOK, h.w.Paradigm(lemma))
}

func (h *handlers) listWords(c *gin.Context) {
	words, err := h.w.Words(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]wordJSON, len(words))
	for i, w := range words {
		out[i] = toWordJSON(w)
	}
	c.JSON(http.StatusOK, gin.H{"words": out})
}

func (h *handlers) addWord(c *gin.Context) {
	var req wordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	t, ok := wordtype.Parse(req.Type)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown word type " + strconv.Quote(req.Type)})
		return
	}

	added, err := h.w.AddWord(c.Request.Context(), store.Word{Word: req.Word, Type: t, Rule: req.Rule})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toWordJSON(added))
}

func (h *handlers) history(c *gin.Context) {
	q := store.HistoryQuery{Token: c.Query("token")}
	if s := c.Query("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		q.Limit = n
	}

	entries, err := h.w.History(c.Request.Context(), q)
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]historyJSON, len(entries))
	for i, e := range entries {
		out[i] = historyJSON{
			ID:         e.ID,
			Token:      e.Token,
			Sentence:   e.Sentence,
			Type:       e.Type,
			Rule:       e.Rule,
			Confidence: e.Confidence,
			CreatedAt:  e.CreatedAt,
		}
		if json.Valid([]byte(e.ResultJSON)) {
			out[i].Result = json.RawMessage(e.ResultJSON)
		}
	}
	c.JSON(http.StatusOK, gin.H{"history": out})
}

// writeError maps sentinel errors to status codes.
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, internalerr.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, internalerr.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, internalerr.ErrStoreUnavailable):
		status = http.StatusServiceUnavailable
	}
	c.Error(err)
	c.JSON(status, gin.H{"error": err.Error()})
}
