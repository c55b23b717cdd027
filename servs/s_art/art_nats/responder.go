// file:artkv/servs/s_art/art_nats/responder.go
package art_nats

import (
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
	"github.com/rskv-p/artkv/servs/s_art/art_serv"
)

// Responder answers store requests arriving on NATS.
type Responder struct {
	nc     *nats.Conn
	store  *art_serv.Store
	prefix string
	log    zerolog.Logger
	subs   []*nats.Subscription
}

// NewResponder binds store to subjects under prefix.
func NewResponder(nc *nats.Conn, store *art_serv.Store, prefix string, log zerolog.Logger) *Responder {
	return &Responder{nc: nc, store: store, prefix: prefix, log: log}
}

// Start subscribes every subject in a shared queue group.
func (r *Responder) Start() error {
	handlers := map[string]func(Request) Response{
		SubjectGet: r.get,
		SubjectPut: r.put,
		SubjectDel: r.del,
		SubjectLen: r.length,
	}
	for name, h := range handlers {
		subject := r.prefix + "." + name
		sub, err := r.nc.QueueSubscribe(subject, queueGroup, r.wrap(h))
		if err != nil {
			_ = r.Stop()
			return fmt.Errorf("subscribe %s: %w", subject, err)
		}
		r.subs = append(r.subs, sub)
	}
	if err := r.nc.Flush(); err != nil {
		return err
	}
	r.log.Info().Str("subject", r.prefix+".*").Msg("nats responder started")
	return nil
}

// Stop drops every subscription.
func (r *Responder) Stop() error {
	var first error
	for _, sub := range r.subs {
		if err := sub.Unsubscribe(); err != nil && first == nil {
			first = err
		}
	}
	r.subs = nil
	return first
}

func (r *Responder) wrap(h func(Request) Response) nats.MsgHandler {
	return func(msg *nats.Msg) {
		var req Request
		var resp Response
		if len(msg.Data) > 0 {
			if err := json.Unmarshal(msg.Data, &req); err != nil {
				resp.Error = "invalid JSON: " + err.Error()
			}
		}
		if resp.Error == "" {
			resp = h(req)
		}

		data, err := json.Marshal(resp)
		if err != nil {
			r.log.Error().Err(err).Str("subject", msg.Subject).Msg("encode response")
			return
		}
		if err := msg.Respond(data); err != nil {
			r.log.Warn().Err(err).Str("subject", msg.Subject).Msg("respond")
		}
	}
}

func (r *Responder) get(req Request) Response {
	v, ok := r.store.Get(req.Key)
	return Response{Found: ok, Value: v}
}

func (r *Responder) put(req Request) Response {
	old, replaced, err := r.store.Put(req.Key, req.Value)
	if err != nil {
		return Response{Error: err.Error()}
	}
	return Response{Replaced: replaced, Value: old}
}

func (r *Responder) del(req Request) Response {
	old, ok := r.store.Delete(req.Key)
	return Response{Found: ok, Value: old}
}

func (r *Responder) length(Request) Response {
	return Response{Len: r.store.Len()}
}
