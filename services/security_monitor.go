package services

import (
	"log"
	"sync"
	"time"
)

const (
	failedLoginWindow    = 10 * time.Minute
	failedLoginThreshold = 5
	alertCooldown        = time.Hour
	maxStoredAlerts      = 100
)

// SecurityEventMonitor counts failed logins per IP and raises alerts
type SecurityEventMonitor struct {
	mu           sync.Mutex
	failedLogins map[string][]time.Time
	alertedIPs   map[string]time.Time
	alerts       []SecurityAlert
	onAlert      func(SecurityAlert)
	now          func() time.Time
}

// SecurityAlert represents a triggered security alert
type SecurityAlert struct {
	Timestamp time.Time
	IP        string
	Reason    string
	Level     string // "WARNING", "CRITICAL"
}

// Monitor is the global security monitor
var Monitor *SecurityEventMonitor

// NewSecurityMonitor creates a monitor without the background cleanup loop
func NewSecurityMonitor() *SecurityEventMonitor {
	return &SecurityEventMonitor{
		failedLogins: make(map[string][]time.Time),
		alertedIPs:   make(map[string]time.Time),
		now:          time.Now,
	}
}

// InitSecurityMonitor initializes the global monitor
func InitSecurityMonitor() {
	Monitor = NewSecurityMonitor()
	go Monitor.cleanupLoop()
}

// OnAlert registers a callback invoked (outside the lock) for each new alert
func (m *SecurityEventMonitor) OnAlert(fn func(SecurityAlert)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onAlert = fn
}

// TrackFailedLogin records a failed login and reports whether it raised an alert
func (m *SecurityEventMonitor) TrackFailedLogin(ip, reason string) bool {
	m.mu.Lock()

	now := m.now()
	windowStart := now.Add(-failedLoginWindow)
	recent := m.failedLogins[ip][:0]
	for _, t := range m.failedLogins[ip] {
		if t.After(windowStart) {
			recent = append(recent, t)
		}
	}
	recent = append(recent, now)
	m.failedLogins[ip] = recent

	log.Printf("[SECURITY] LOGIN_FAILED | IP: %s | Attempts: %d | %s", ip, len(recent), reason)

	if len(recent) < failedLoginThreshold {
		m.mu.Unlock()
		return false
	}

	alert, raised := m.raiseAlertLocked(ip, "Multiple failed logins detected", now)
	handler := m.onAlert
	m.mu.Unlock()

	if raised && handler != nil {
		handler(alert)
	}
	return raised
}

func (m *SecurityEventMonitor) raiseAlertLocked(ip, reason string, now time.Time) (SecurityAlert, bool) {
	if last, ok := m.alertedIPs[ip]; ok && now.Sub(last) < alertCooldown {
		return SecurityAlert{}, false
	}
	m.alertedIPs[ip] = now

	alert := SecurityAlert{
		Timestamp: now,
		IP:        ip,
		Reason:    reason,
		Level:     "CRITICAL",
	}
	m.alerts = append([]SecurityAlert{alert}, m.alerts...)
	if len(m.alerts) > maxStoredAlerts {
		m.alerts = m.alerts[:maxStoredAlerts]
	}

	log.Printf("[SECURITY ALERT] %s from IP: %s", reason, ip)
	return alert, true
}

// GetRecentAlerts returns a copy of recent alerts, newest first
func (m *SecurityEventMonitor) GetRecentAlerts() []SecurityAlert {
	m.mu.Lock()
	defer m.mu.Unlock()
	alertsCopy := make([]SecurityAlert, len(m.alerts))
	copy(alertsCopy, m.alerts)
	return alertsCopy
}

// Cleanup drops attempt windows and alert cooldowns that have lapsed
func (m *SecurityEventMonitor) Cleanup() {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for ip, attempts := range m.failedLogins {
		if len(attempts) == 0 || now.Sub(attempts[len(attempts)-1]) > failedLoginWindow {
			delete(m.failedLogins, ip)
		}
	}
	for ip, last := range m.alertedIPs {
		if now.Sub(last) > alertCooldown {
			delete(m.alertedIPs, ip)
		}
	}
}

func (m *SecurityEventMonitor) cleanupLoop() {
	ticker := time.NewTicker(time.Hour)
	for range ticker.C {
		m.Cleanup()
	}
}
