package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"crosses/communication"
)

var ErrRejected = errors.New("action rejected")

// Client drives a game hosted by the server package.
type Client struct {
	serverURL string
	http      *http.Client
}

func New(serverURL string) *Client {
	return &Client{
		serverURL: serverURL,
		http:      http.DefaultClient,
	}
}

func (c *Client) State(ctx context.Context) (communication.State, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.serverURL+"/state", nil)
	if err != nil {
		return communication.State{}, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return communication.State{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return communication.State{}, fmt.Errorf("get state: %s", resp.Status)
	}
	var state communication.State
	if err := json.NewDecoder(resp.Body).Decode(&state); err != nil {
		return communication.State{}, fmt.Errorf("decode state: %w", err)
	}
	return state, nil
}

// Send posts a and returns the game state after it. A rejected action still
// returns the current state alongside an error wrapping ErrRejected.
func (c *Client) Send(ctx context.Context, a communication.Action) (communication.State, error) {
	data, err := json.Marshal(a)
	if err != nil {
		return communication.State{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.serverURL+"/action", bytes.NewReader(data))
	if err != nil {
		return communication.State{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return communication.State{}, err
	}
	defer resp.Body.Close()

	var reply communication.Reply
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return communication.State{}, fmt.Errorf("decode reply (%s): %w", resp.Status, err)
	}
	if resp.StatusCode != http.StatusOK {
		return reply.State, fmt.Errorf("%w: %s", ErrRejected, reply.Error)
	}
	return reply.State, nil
}

func (c *Client) Move(ctx context.Context, x, y int) (communication.State, error) {
	return c.Send(ctx, communication.Action{Type: communication.MoveAction, X: x, Y: y})
}

func (c *Client) Back(ctx context.Context) (communication.State, error) {
	return c.Send(ctx, communication.Action{Type: communication.BackAction})
}

func (c *Client) Forward(ctx context.Context) (communication.State, error) {
	return c.Send(ctx, communication.Action{Type: communication.ForwardAction})
}
