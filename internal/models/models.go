package models

import (
	"time"

	"github.com/lib/pq"
)

// Notification type codes
const (
	NotificationLike           = 1
	NotificationFriendAccepted = 4
)

type User struct {
	UserID                 string         `json:"userId" db:"user_id"`
	Name                   string         `json:"name" db:"name"`
	Email                  string         `json:"email" db:"email"`
	PasswordHash           string         `json:"-" db:"password_hash"`
	Dob                    string         `json:"dob" db:"dob"`
	Country                string         `json:"country" db:"country"`
	ProfilePic             string         `json:"profilePic" db:"profile_pic"`
	Bio                    string         `json:"bio" db:"bio"`
	Disabled               bool           `json:"disabled" db:"disabled"`
	NumberOfPosts          int            `json:"numberOfPosts" db:"number_of_posts"`
	FriendList             pq.StringArray `json:"friendList" db:"friend_list"`
	FriendRequest          pq.StringArray `json:"friendRequest" db:"friend_request"`
	RefreshToken           string         `json:"-" db:"refresh_token"`
	RefreshTokenExpiryTime time.Time      `json:"-" db:"refresh_token_expiry_time"`
}

type Admin struct {
	AdminID      string `json:"adminId" db:"admin_id"`
	Email        string `json:"email" db:"email"`
	PasswordHash string `json:"-" db:"password_hash"`
}

type Notification struct {
	NotificationID string    `json:"notificationId" db:"notification_id"`
	UserID         string    `json:"userId" db:"user_id"`
	ActorName      string    `json:"uName" db:"actor_name"`
	Type           int       `json:"type" db:"type"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
}

// Post holds bare references (uid, shared_post). The joined view with resolved
// author and reshare origin is FeedPost.
type Post struct {
	PostID     string         `json:"postId" db:"post_id"`
	UID        string         `json:"uid" db:"uid"`
	Body       string         `json:"body" db:"body"`
	Picture    string         `json:"picture" db:"picture"`
	Public     bool           `json:"public" db:"public"`
	Weight     string         `json:"weight" db:"weight"`
	Style      string         `json:"style" db:"style"`
	MediaType  string         `json:"mediaType" db:"media_type"`
	SharedPost *string        `json:"sharedPost,omitempty" db:"shared_post"`
	Likes      pq.StringArray `json:"likes" db:"likes"`
	Shares     pq.StringArray `json:"shares" db:"shares"`
	DateAdded  time.Time      `json:"dateAdded" db:"date_added"`
}

// UserSummary - author fields attached to posts in feeds
type UserSummary struct {
	UserID     string `json:"userId"`
	Name       string `json:"name"`
	ProfilePic string `json:"profilePic"`
	Bio        string `json:"bio"`
}

// SharedPost - the reshare origin with its author resolved
type SharedPost struct {
	Post
	User UserSummary `json:"user"`
}

// FeedPost - enriched view returned by feed queries
type FeedPost struct {
	Post
	User   UserSummary `json:"user"`
	Shared *SharedPost `json:"post,omitempty"`
}
