/*
 * Copyright (c) 2025, WSO2 LLC. (https://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package content

import dbmodel "github.com/casurance/intake/internal/system/database/model"

const postColumns = "ID, KIND, TITLE, SLUG, EXCERPT, CONTENT, TAGS, STATUS, AUTHOR, CREATED_AT, UPDATED_AT"

var (
	// queryCreatePost inserts a post.
	queryCreatePost = dbmodel.DBQuery{
		ID: "CNQ-POST_MGT-01",
		Query: "INSERT INTO CONTENT_POST (" + postColumns + ") " +
			"VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)",
	}

	// queryListPublishedPosts lists the published posts of a kind, newest first.
	queryListPublishedPosts = dbmodel.DBQuery{
		ID: "CNQ-POST_MGT-02",
		Query: "SELECT " + postColumns + " FROM CONTENT_POST WHERE KIND = $1 AND STATUS = 'published' " +
			"ORDER BY CREATED_AT DESC",
	}

	// queryListAllPosts lists every post of a kind, newest first.
	queryListAllPosts = dbmodel.DBQuery{
		ID:    "CNQ-POST_MGT-03",
		Query: "SELECT " + postColumns + " FROM CONTENT_POST WHERE KIND = $1 ORDER BY CREATED_AT DESC",
	}

	// queryCountSlug counts the posts of a kind using a slug.
	queryCountSlug = dbmodel.DBQuery{
		ID:    "CNQ-POST_MGT-04",
		Query: "SELECT COUNT(*) AS total FROM CONTENT_POST WHERE KIND = $1 AND SLUG = $2",
	}
)
