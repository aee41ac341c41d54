package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/cbodonnell/textquest/pkg/log"
	"github.com/cbodonnell/textquest/pkg/messages"
	"github.com/cbodonnell/textquest/pkg/state"
	"github.com/cbodonnell/textquest/pkg/world"
)

func HandleChat(stateManager state.StateManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := &messages.ChatRequest{}
		if err := json.NewDecoder(r.Body).Decode(req); err != nil {
			http.Error(w, "Failed to decode request body", http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.UserInput) == "" {
			http.Error(w, "user_input must not be empty", http.StatusBadRequest)
			return
		}

		resp := &messages.ChatResponse{}
		err := stateManager.Do(r.Context(), func(gw *world.World) error {
			resp.Message = gw.Step(req.UserInput)
			resp.Location = gw.Location()
			resp.Win = gw.Won()
			return nil
		})
		if err != nil {
			log.Error("failed to run command: %v", err)
			http.Error(w, "Failed to run command", http.StatusInternalServerError)
			return
		}

		log.Debug("chat %q -> %s", req.UserInput, resp.Location)
		writeJSON(w, resp)
	}
}

func HandleReset(stateManager state.StateManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := stateManager.Reset(r.Context()); err != nil {
			log.Error("failed to reset game: %v", err)
			http.Error(w, "Failed to reset game", http.StatusInternalServerError)
			return
		}
		log.Info("Game reset")
		w.WriteHeader(http.StatusNoContent)
	}
}

func HandleCheckInventory(stateManager state.StateManager) http.HandlerFunc {
	return handleQuery(stateManager, func(gw *world.World) interface{} {
		return &messages.InventoryResponse{Inventory: gw.Inventory()}
	})
}

func HandleCheckLocation(stateManager state.StateManager) http.HandlerFunc {
	return handleQuery(stateManager, func(gw *world.World) interface{} {
		return &messages.LocationResponse{Location: gw.Location()}
	})
}

func HandleCheckObs(stateManager state.StateManager) http.HandlerFunc {
	return handleQuery(stateManager, func(gw *world.World) interface{} {
		return &messages.ObservationResponse{Obs: gw.Observation()}
	})
}

func handleQuery(stateManager state.StateManager, query func(gw *world.World) interface{}) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var resp interface{}
		err := stateManager.Do(r.Context(), func(gw *world.World) error {
			resp = query(gw)
			return nil
		})
		if err != nil {
			log.Error("failed to read game state: %v", err)
			http.Error(w, "Failed to read game state", http.StatusInternalServerError)
			return
		}
		writeJSON(w, resp)
	}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("failed to encode response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}
