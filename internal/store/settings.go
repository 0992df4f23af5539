package store

// TelegramToken returns the stored bot token, empty if none was set.
func (s *Store) TelegramToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.telegramToken
}

// SetTelegramToken stores the bot token as a raw string blob.
func (s *Store) SetTelegramToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setTelegramToken(token)
}

func (s *Store) setTelegramToken(token string) {
	s.telegramToken = token
	s.saveRaw(keyToken, token)
	s.logAction("تحديث إعدادات", "تم تحديث توكن تيليجرام")
}
