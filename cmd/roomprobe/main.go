// Command roomprobe is a small websocket client for poking a running chess
// relay. It joins or spectates a room, optionally plays a move or says a
// chat line, and prints every event the server sends until the wait timer
// runs out or the connection closes.
//
// Examples:
//
//	roomprobe -room lobby -name Alice
//	roomprobe -room lobby -name Alice -move e2-e4 -piece ♙
//	roomprobe -room lobby -spectate
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

var (
	addr     = flag.String("addr", "localhost:8080", "server host:port")
	room     = flag.String("room", "lobby", "room id to join or spectate")
	name     = flag.String("name", "Probe", "player name when joining")
	spectate = flag.Bool("spectate", false, "watch instead of taking a seat")
	move     = flag.String("move", "", "move to send after joining, as from-to (e.g. e2-e4)")
	piece    = flag.String("piece", "", "piece symbol carried with the move")
	chat     = flag.String("chat", "", "chat line to send after joining")
	wait     = flag.Duration("wait", 30*time.Second, "how long to keep printing events")
)

func main() {
	flag.Parse()

	frames, err := buildFrames(*room, *name, *spectate, *move, *piece, *chat)
	if err != nil {
		fmt.Fprintln(os.Stderr, "roomprobe:", err)
		os.Exit(1)
	}

	u := url.URL{Scheme: "ws", Host: *addr, Path: "/ws"}
	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "roomprobe: dial %s: %v\n", u.String(), err)
		os.Exit(1)
	}
	defer conn.Close()

	for _, frame := range frames {
		if err := conn.WriteJSON(frame); err != nil {
			fmt.Fprintln(os.Stderr, "roomprobe: send:", err)
			os.Exit(1)
		}
	}

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)

	events := make(chan []byte)
	errs := make(chan error, 1)
	go func() {
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				errs <- err
				return
			}
			events <- data
		}
	}()

	deadline := time.After(*wait)
	for {
		select {
		case data := <-events:
			fmt.Println(formatEvent(data))
		case err := <-errs:
			fmt.Fprintln(os.Stderr, "roomprobe: connection closed:", err)
			return
		case <-deadline:
			return
		case <-interrupt:
			return
		}
	}
}

// buildFrames assembles the outbound frames for the chosen probe actions,
// in the order the server should see them.
func buildFrames(room, name string, spectate bool, move, piece, chat string) ([]map[string]string, error) {
	var frames []map[string]string

	if spectate {
		if move != "" {
			return nil, fmt.Errorf("spectators cannot move")
		}
		frames = append(frames, map[string]string{
			"type":   "spectate",
			"gameId": room,
		})
	} else {
		frames = append(frames, map[string]string{
			"type":       "join_game",
			"gameId":     room,
			"playerName": name,
		})
	}

	if move != "" {
		from, to, err := parseMove(move)
		if err != nil {
			return nil, err
		}
		frames = append(frames, map[string]string{
			"type":  "chess_move",
			"from":  from,
			"to":    to,
			"piece": piece,
		})
	}

	if chat != "" {
		frames = append(frames, map[string]string{
			"type":    "chat_message",
			"message": chat,
			"sender":  name,
		})
	}

	return frames, nil
}

// parseMove splits a from-to move argument like "e2-e4".
func parseMove(s string) (string, string, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("bad move %q: want from-to, e.g. e2-e4", s)
	}
	return parts[0], parts[1], nil
}

// formatEvent renders one server frame as a type column plus the remaining
// payload, falling back to the raw bytes for anything that is not JSON.
func formatEvent(data []byte) string {
	var frame map[string]interface{}
	if err := json.Unmarshal(data, &frame); err != nil {
		return string(data)
	}

	eventType, _ := frame["type"].(string)
	delete(frame, "type")

	rest, err := json.Marshal(frame)
	if err != nil {
		return string(data)
	}
	return fmt.Sprintf("%-20s %s", eventType, rest)
}
