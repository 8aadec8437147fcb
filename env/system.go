package env

import (
	"bufio"
	"os"
	"runtime"
	"strings"
)

// System describes the host: distribution identity from /etc/os-release,
// container and SSH session detection, and the package manager to use.
type System struct {
	UName        string // runtime.GOOS: linux or darwin
	DistID       string // alpine, arch, centos, debian, fedora, kali, macOS, nixos, rhel, ubuntu, ...
	DistIDLike   string // ID_LIKE: debian, "rhel fedora", ...
	DistVersion  string
	DistCodename string // focal, bookworm, kali-rolling, ...

	Container bool // /.dockerenv or /run/.containerenv present
	SSH       bool // SSH_CLIENT, SSH_TTY or SSH_CONNECTION set
	BusyBox   bool // no /etc/os-release and no /sbin

	PM        string // apk, apt, brew, dnf or nix
	PMInstall string // PM with install subcommand and quiet/no-cache options
}

const distUnknown = "unknown"

// DetectSystem inspects the host. It never fails outright: unknown
// distributions report DistID "unknown" with the remaining fields zero.
func DetectSystem() *System {
	s := &System{UName: runtime.GOOS}

	s.Container = exists("/.dockerenv") || exists("/run/.containerenv")
	s.SSH = os.Getenv("SSH_CLIENT") != "" || os.Getenv("SSH_TTY") != "" || os.Getenv("SSH_CONNECTION") != ""

	if s.UName == "darwin" {
		s.DistID = "macOS"
		s.PM = "brew"
		s.PMInstall = "brew install --quiet"
		return s
	}

	release := osRelease("/etc/os-release")
	if release == nil {
		s.DistID = distUnknown
		s.BusyBox = !exists("/sbin")
		return s
	}

	s.DistID = release["ID"]
	s.DistIDLike = release["ID_LIKE"]
	s.DistVersion = release["VERSION_ID"]
	s.DistCodename = release["VERSION_CODENAME"]
	if s.DistID == "" {
		s.DistID = distUnknown
	}

	switch {
	case s.NixOS():
		s.PM = "nix"
		s.PMInstall = "nix-env --install"
	case s.AlpineLike():
		s.PM = "apk"
		s.PMInstall = "apk add --quiet --no-progress"
		if s.Container {
			s.PMInstall += " --no-cache"
		}
	case s.DebianLike():
		s.PM = "apt"
		s.PMInstall = "apt-get install -y -qq"
	case s.FedoraLike(), s.RHELLike():
		s.PM = "dnf"
		s.PMInstall = "dnf install -y -q"
	}
	return s
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// osRelease parses the KEY=value lines of an os-release file. A missing or
// unreadable file returns nil.
func osRelease(path string) map[string]string {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	fields := make(map[string]string)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		fields[key] = strings.Trim(value, `"'`)
	}
	return fields
}

func (s *System) Alpine() bool { return s.DistID == "alpine" && !s.NixOS() && !s.BusyBox }

func (s *System) AlpineLike() bool {
	return s.DistID == "alpine" || strings.Contains(s.DistIDLike, "alpine")
}

func (s *System) Arch() bool   { return s.DistID == "arch" }
func (s *System) CentOS() bool { return s.DistID == "centos" }
func (s *System) Debian() bool { return s.DistID == "debian" }

func (s *System) DebianLike() bool {
	return s.DistID == "debian" || strings.Contains(s.DistIDLike, "debian")
}

func (s *System) Fedora() bool { return s.DistID == "fedora" }

func (s *System) FedoraLike() bool {
	return s.DistID == "fedora" || strings.Contains(s.DistIDLike, "fedora")
}

func (s *System) Kali() bool  { return s.DistID == "kali" }
func (s *System) MacOS() bool { return s.UName == "darwin" }

func (s *System) NixOS() bool { return s.DistID == "nixos" || exists("/etc/nix") }

func (s *System) RHEL() bool { return s.DistID == "rhel" }

func (s *System) RHELLike() bool {
	return s.DistID == "rhel" || strings.Contains(s.DistIDLike, "rhel")
}

func (s *System) Ubuntu() bool { return s.DistID == "ubuntu" }

// DebianFrontend returns "noninteractive" for Debian-like containers, where
// apt must not prompt, and "" otherwise.
func (s *System) DebianFrontend() string {
	if s.Container && s.DebianLike() {
		return "noninteractive"
	}
	return ""
}

// Host returns the first label of the hostname.
func Host() string {
	hostname, err := os.Hostname()
	if err != nil {
		return ""
	}
	host, _, _ := strings.Cut(hostname, ".")
	return host
}
