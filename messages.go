/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import "github.com/Seednode/blackout/games"

// Inbound message types.
const (
	MsgCreateRoom     = "createRoom"
	MsgJoinRoom       = "joinRoom"
	MsgStartRound     = "startRound"
	MsgStartGame      = "startGame"
	MsgNextRound      = "nextRound"
	MsgSubmitBid      = "submitBid"
	MsgAttack         = "attack"
	MsgTargetAction   = "targetAction"
	MsgAnswerQuestion = "answerQuestion"
	MsgSubmitAnswer   = "submitAnswer"
)

// MsgAck is the type of every acknowledgement; Ref echoes the request's ref.
const MsgAck = "ack"

// ClientMessage is every frame a client may send. Only the fields relevant to
// Type are read.
type ClientMessage struct {
	Type      string            `json:"type"`
	Ref       int               `json:"ref,omitempty"`
	Code      string            `json:"roomCode,omitempty"`
	Name      string            `json:"playerName,omitempty"`
	Amount    int               `json:"amount,omitempty"`
	TargetID  string            `json:"targetId,omitempty"`
	ItemID    string            `json:"itemId,omitempty"`
	Selection games.ColorOption `json:"selection"`
}

// ServerMessage wraps broadcasts and acknowledgements.
type ServerMessage struct {
	Type    string `json:"type"`
	Ref     int    `json:"ref,omitempty"`
	Payload any    `json:"payload,omitempty"`
}

type CreateAck struct {
	Success  bool   `json:"success"`
	RoomCode string `json:"roomCode,omitempty"`
}

type JoinAck struct {
	Success bool `json:"success"`
	IsVIP   bool `json:"isVIP"`
}

type SubmitAck struct {
	Success bool `json:"success"`
}

type AnswerAck struct {
	Correct bool `json:"correct"`
}
