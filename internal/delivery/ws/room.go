package ws

// Join associates connID with the room group, leaving any previous group.
// Unknown connections are ignored.
func (h *Hub) Join(connID, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	client, ok := h.clients[connID]
	if !ok {
		return
	}

	h.leaveGroup(client)

	members, ok := h.groups[room]
	if !ok {
		members = make(map[string]*Client)
		h.groups[room] = members
	}
	members[connID] = client
	client.room = room
}

// leaveGroup drops client from its group; empty groups are deleted.
// Caller must hold Lock.
func (h *Hub) leaveGroup(client *Client) {
	if client.room == "" {
		return
	}

	if members, ok := h.groups[client.room]; ok {
		delete(members, client.ID)
		if len(members) == 0 {
			delete(h.groups, client.room)
		}
	}
	client.room = ""
}

// RoomSize returns the number of connections in the room group
func (h *Hub) RoomSize(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.groups[room])
}

// GroupCount returns the number of non-empty room groups
func (h *Hub) GroupCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.groups)
}
