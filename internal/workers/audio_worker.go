package workers

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/yoockh/bookwise/internal/cache"
	"github.com/yoockh/bookwise/internal/models"
	"github.com/yoockh/bookwise/internal/providers/llm"
	"github.com/yoockh/bookwise/internal/providers/stt"
	"github.com/yoockh/bookwise/internal/services"
)

const (
	DefaultStream = "audio:stream"
	DefaultGroup  = "audio-workers"

	maxAudioBytes = 10 << 20
)

// AudioWorkerPool turns queued customer audio into transcript turns and
// assistant replies.
type AudioWorkerPool struct {
	Redis       *redis.Client
	Publisher   cache.Publisher
	Buffers     services.BufferService
	Transcripts services.TranscriptService
	NumWorkers  int

	STT stt.Provider
	LLM llm.Provider

	HTTP   *http.Client
	Logger *logrus.Logger

	Stream         string
	Group          string
	ConsumerPrefix string
}

func (p *AudioWorkerPool) Start(ctx context.Context) error {
	if p.Redis == nil || p.Buffers == nil || p.Transcripts == nil || p.STT == nil || p.LLM == nil {
		return errors.New("AudioWorkerPool missing dependency: Redis/Buffers/Transcripts/STT/LLM must be set")
	}
	p.defaults()

	if err := p.Redis.XGroupCreateMkStream(ctx, p.Stream, p.Group, "0").Err(); err != nil && !strings.Contains(err.Error(), "BUSYGROUP") {
		return err
	}

	for i := 0; i < p.NumWorkers; i++ {
		consumer := p.ConsumerPrefix + "-" + strconv.Itoa(i+1)
		go p.runConsumer(ctx, consumer)
	}
	p.Logger.WithFields(logrus.Fields{"stream": p.Stream, "workers": p.NumWorkers}).Info("audio workers started")
	return nil
}

func (p *AudioWorkerPool) defaults() {
	if p.Stream == "" {
		p.Stream = DefaultStream
	}
	if p.Group == "" {
		p.Group = DefaultGroup
	}
	if p.ConsumerPrefix == "" {
		p.ConsumerPrefix = "c"
	}
	if p.NumWorkers <= 0 {
		p.NumWorkers = 5
	}
	if p.Logger == nil {
		p.Logger = logrus.New()
	}
	if p.HTTP == nil {
		p.HTTP = &http.Client{Timeout: 15 * time.Second}
	}
	if p.Publisher == nil && p.Redis != nil {
		p.Publisher = cache.NewRedisCache(p.Redis)
	}
}

func (p *AudioWorkerPool) runConsumer(ctx context.Context, consumer string) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		res, err := p.Redis.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    p.Group,
			Consumer: consumer,
			Streams:  []string{p.Stream, ">"},
			Count:    10,
			Block:    5 * time.Second,
		}).Result()

		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			if ctx.Err() != nil {
				return
			}
			p.Logger.WithError(err).WithField("consumer", consumer).Warn("stream read failed")
			time.Sleep(500 * time.Millisecond)
			continue
		}

		for _, stream := range res {
			for _, msg := range stream.Messages {
				p.handleMsg(ctx, msg)
				_ = p.Redis.XAck(ctx, p.Stream, p.Group, msg.ID).Err()
			}
		}
	}
}

// Chunk is one queued audio message.
type Chunk struct {
	RoomID      string
	ChunkIndex  int64
	Language    string
	AudioBase64 string
	AudioURL    string
}

func (c Chunk) Values() map[string]any {
	v := map[string]any{
		"room_id":     c.RoomID,
		"chunk_index": strconv.FormatInt(c.ChunkIndex, 10),
		"ts_unix":     strconv.FormatInt(time.Now().UTC().Unix(), 10),
	}
	if c.Language != "" {
		v["language"] = c.Language
	}
	if c.AudioBase64 != "" {
		v["audio_base64"] = c.AudioBase64
	}
	if c.AudioURL != "" {
		v["audio_url"] = c.AudioURL
	}
	return v
}

func chunkFromValues(values map[string]any) (Chunk, bool) {
	get := func(k string) string {
		s, _ := values[k].(string)
		return s
	}
	idx, err := strconv.ParseInt(get("chunk_index"), 10, 64)
	c := Chunk{
		RoomID:      get("room_id"),
		ChunkIndex:  idx,
		Language:    get("language"),
		AudioBase64: get("audio_base64"),
		AudioURL:    get("audio_url"),
	}
	return c, err == nil && c.RoomID != "" && idx > 0
}

func (p *AudioWorkerPool) handleMsg(ctx context.Context, msg redis.XMessage) {
	c, ok := chunkFromValues(msg.Values)
	if !ok {
		p.Logger.WithField("redis_id", msg.ID).Warn("dropping malformed audio message")
		return
	}
	p.process(ctx, c, p.Logger.WithFields(logrus.Fields{
		"redis_id":    msg.ID,
		"room_id":     c.RoomID,
		"chunk_index": c.ChunkIndex,
	}))
}

func (p *AudioWorkerPool) process(ctx context.Context, c Chunk, log *logrus.Entry) {
	audio, err := p.loadAudio(ctx, c)
	if err != nil {
		log.WithError(err).Warn("audio unavailable")
		_ = p.Buffers.MarkSTT(ctx, c.RoomID, c.ChunkIndex, "", "", 0, models.BufferFailed)
		p.status(ctx, c, "failed", err.Error())
		return
	}

	// speech to text
	_ = p.Buffers.MarkSTT(ctx, c.RoomID, c.ChunkIndex, "", "", 0, models.BufferProcessing)
	p.status(ctx, c, "processing", "stt processing")

	text, conf, err := p.STT.Transcribe(ctx, audio, c.Language)
	if err != nil {
		log.WithError(err).Error("stt failed")
		_ = p.Buffers.MarkSTT(ctx, c.RoomID, c.ChunkIndex, "", "", 0, models.BufferFailed)
		p.status(ctx, c, "failed", "stt failed")
		return
	}
	text = strings.TrimSpace(text)
	if text == "" {
		_ = p.Buffers.MarkSTT(ctx, c.RoomID, c.ChunkIndex, "", "", 0, models.BufferDone)
		p.status(ctx, c, "done", "no speech detected")
		return
	}

	// stable ids make a redelivered chunk replace its turns instead of
	// appending duplicates
	utteranceID := fmt.Sprintf("%s-chunk-%d", c.RoomID, c.ChunkIndex)
	room, err := p.Transcripts.Process(ctx, c.RoomID, models.Utterance{
		UtteranceID: utteranceID,
		Role:        models.RoleCustomer,
		Text:        text,
	})
	if err != nil {
		log.WithError(err).Error("transcript update failed")
		_ = p.Buffers.MarkSTT(ctx, c.RoomID, c.ChunkIndex, text, "", conf, models.BufferFailed)
		p.status(ctx, c, "failed", "transcript update failed")
		return
	}

	_ = p.Buffers.MarkSTT(ctx, c.RoomID, c.ChunkIndex, text, utteranceID, conf, models.BufferDone)
	p.respond(ctx, c, map[string]any{
		"type":         "stt_result",
		"chunk_index":  c.ChunkIndex,
		"utterance_id": utteranceID,
		"text":         text,
		"confidence":   conf,
		"is_final":     true,
	})

	// assistant reply
	start := time.Now()
	_ = p.Buffers.MarkReply(ctx, c.RoomID, c.ChunkIndex, "", models.BufferProcessing, 0)
	p.status(ctx, c, "processing", "reply processing")

	chunks, errs := p.LLM.StreamAnswer(ctx, llm.ReplyPrompt(room.Transcripts, room.Readiness))

	var full strings.Builder
	seq := int64(0)
	for chunk := range chunks {
		seq++
		full.WriteString(chunk)
		p.respond(ctx, c, map[string]any{
			"type":        "llm_chunk",
			"chunk_index": c.ChunkIndex,
			"seq":         seq,
			"chunk":       chunk,
		})
	}

	if streamErr := <-errs; streamErr != nil {
		log.WithError(streamErr).Error("llm stream failed")
		_ = p.Buffers.MarkReply(ctx, c.RoomID, c.ChunkIndex, "", models.BufferFailed, time.Since(start).Milliseconds())
		p.status(ctx, c, "failed", "reply failed")
		return
	}

	answer := strings.TrimSpace(full.String())
	if answer != "" {
		if _, err := p.Transcripts.Process(ctx, c.RoomID, models.Utterance{
			UtteranceID: fmt.Sprintf("%s-reply-%d", c.RoomID, c.ChunkIndex),
			Role:        models.RoleAssistant,
			Text:        answer,
		}); err != nil {
			log.WithError(err).Warn("assistant turn not stored")
		}
	}

	procMS := time.Since(start).Milliseconds()
	_ = p.Buffers.MarkReply(ctx, c.RoomID, c.ChunkIndex, answer, models.BufferDone, procMS)

	p.respond(ctx, c, map[string]any{
		"type":               "llm_complete",
		"chunk_index":        c.ChunkIndex,
		"full_response":      answer,
		"processing_time_ms": procMS,
	})
	p.status(ctx, c, "done", "chunk processed")
	log.WithField("processing_ms", procMS).Info("audio chunk processed")
}

func (p *AudioWorkerPool) loadAudio(ctx context.Context, c Chunk) ([]byte, error) {
	if c.AudioBase64 != "" {
		raw := c.AudioBase64
		if i := strings.Index(raw, ","); i >= 0 {
			raw = raw[i+1:] // strip data:...;base64,
		}
		b, err := base64.StdEncoding.DecodeString(raw)
		if err != nil {
			return nil, errors.New("invalid audio_base64")
		}
		return b, nil
	}

	if c.AudioURL == "" {
		return nil, errors.New("no audio in message")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.AudioURL, nil)
	if err != nil {
		return nil, errors.New("invalid audio_url")
	}
	resp, err := p.HTTP.Do(req)
	if err != nil {
		return nil, errors.New("failed to fetch audio_url")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("audio_url returned %d", resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxAudioBytes))
	if err != nil || len(body) == 0 {
		return nil, errors.New("empty audio")
	}
	return body, nil
}

func (p *AudioWorkerPool) status(ctx context.Context, c Chunk, status, message string) {
	if p.Publisher == nil {
		return
	}
	_ = p.Publisher.Publish(ctx, cache.StatusChannel(c.RoomID), map[string]any{
		"type":        "status",
		"status":      status,
		"message":     message,
		"chunk_index": c.ChunkIndex,
	})
}

func (p *AudioWorkerPool) respond(ctx context.Context, c Chunk, payload map[string]any) {
	if p.Publisher == nil {
		return
	}
	_ = p.Publisher.Publish(ctx, cache.ResponseChannel(c.RoomID), payload)
}
